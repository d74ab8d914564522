package costing

import "testing"

func TestClassifier_Default(t *testing.T) {
	c := DefaultClassifier()
	tests := []struct {
		name string
		want bool
	}{
		{"Balloon Gas", true},
		{"balloon gas", true},
		{"  BALLOON   gas (helium) ", true},
		{"Helium Balloon Gas Cylinder", true},
		{"Balloon", false},
		{"Diesel", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.IsLaunchScaled(tt.name); got != tt.want {
			t.Errorf("IsLaunchScaled(%q): expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestClassifier_CustomKeywords(t *testing.T) {
	c := NewClassifier("Hydrogen", "", "hydrogen", "radiosonde")
	if len(c.Keywords()) != 2 {
		t.Fatalf("expected 2 keywords after dedupe, got %v", c.Keywords())
	}
	if !c.IsLaunchScaled("Radiosonde RS41") {
		t.Error("expected radiosonde to be launch-scaled")
	}
	if c.IsLaunchScaled("Balloon Gas") {
		t.Error("expected balloon gas to be flat when not configured")
	}
}

func TestClassifier_NoKeywords(t *testing.T) {
	c := NewClassifier()
	if c.IsLaunchScaled("Balloon Gas") {
		t.Error("expected no match with empty keyword set")
	}
}
