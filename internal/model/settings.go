package model

import "time"

// Settings holds the tunable parameters of the cost engine.
type Settings struct {
	TrendThreshold float64   `json:"trend_threshold"` // relative change, 0.05 = 5%
	TrendWindow    int       `json:"trend_window"`    // periods compared on each side
	LaunchKeywords []string  `json:"launch_keywords"`
	WeekStart      int       `json:"week_start"` // time.Weekday, 0 = Sunday
	UpdatedAt      time.Time `json:"updated_at"`
}

// SettingsPatch holds fields that can be updated on the settings record.
type SettingsPatch struct {
	TrendThreshold *float64 `json:"trend_threshold"`
	TrendWindow    *int     `json:"trend_window"`
	LaunchKeywords []string `json:"launch_keywords"`
	WeekStart      *int     `json:"week_start"`
}

// DefaultSettings returns the settings used when none have been saved.
func DefaultSettings() *Settings {
	return &Settings{
		TrendThreshold: 0.05,
		TrendWindow:    1,
		LaunchKeywords: []string{"balloon gas"},
		WeekStart:      0,
	}
}
