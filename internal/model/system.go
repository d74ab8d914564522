package model

import "time"

// System is a catalog entry for a piece of equipment that can be assigned to exercises.
type System struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	BasePrice       *float64          `json:"base_price,omitempty"`
	HasLicense      bool              `json:"has_license"`
	LicensePrice    *float64          `json:"license_price,omitempty"`
	LeadTimeDays    int               `json:"lead_time_days"`
	Specifications  map[string]string `json:"specifications,omitempty"`
	ConsumablesRate *float64          `json:"consumables_rate,omitempty"` // flat monthly rate
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	Presets []*ConsumablePreset `json:"presets,omitempty"`
}

// SystemInput is the request payload for creating a system.
type SystemInput struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	BasePrice       *float64          `json:"base_price"`
	HasLicense      bool              `json:"has_license"`
	LicensePrice    *float64          `json:"license_price"`
	LeadTimeDays    int               `json:"lead_time_days"`
	Specifications  map[string]string `json:"specifications"`
	ConsumablesRate *float64          `json:"consumables_rate"`
}

// Float returns *p, or 0 when p is nil.
func Float(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
