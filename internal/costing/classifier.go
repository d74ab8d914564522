package costing

import "strings"

// DefaultLaunchKeyword is the consumable name fragment that marks launch-scaled usage.
const DefaultLaunchKeyword = "balloon gas"

// Classifier decides whether a consumable's usage scales with the daily launch rate.
type Classifier struct {
	keywords []string
}

// NewClassifier builds a classifier from keywords. Matching is a case-insensitive
// substring test with runs of whitespace collapsed; empty keywords are ignored.
func NewClassifier(keywords ...string) *Classifier {
	seen := make(map[string]bool, len(keywords))
	c := &Classifier{}
	for _, k := range keywords {
		k = normalizeName(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		c.keywords = append(c.keywords, k)
	}
	return c
}

// DefaultClassifier recognizes only DefaultLaunchKeyword.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultLaunchKeyword)
}

// IsLaunchScaled reports whether name matches one of the launch keywords.
// Unknown names are flat monthly consumables.
func (c *Classifier) IsLaunchScaled(name string) bool {
	n := normalizeName(name)
	if n == "" {
		return false
	}
	for _, k := range c.keywords {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

// Keywords returns the normalized keyword set.
func (c *Classifier) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
