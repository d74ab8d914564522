package model

import (
	"fmt"
	"strings"
	"time"
)

// ExerciseStatus is the lifecycle state of an exercise.
type ExerciseStatus string

const (
	ExerciseStatusPlanning  ExerciseStatus = "PLANNING"
	ExerciseStatusPending   ExerciseStatus = "PENDING"
	ExerciseStatusActive    ExerciseStatus = "ACTIVE"
	ExerciseStatusCompleted ExerciseStatus = "COMPLETED"
	ExerciseStatusCancelled ExerciseStatus = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s ExerciseStatus) Valid() bool {
	switch s {
	case ExerciseStatusPlanning, ExerciseStatusPending, ExerciseStatusActive,
		ExerciseStatusCompleted, ExerciseStatusCancelled:
		return true
	}
	return false
}

// FSRTier is the field service representative support level of an assignment.
type FSRTier string

const (
	FSRNone     FSRTier = "NONE"
	FSRPartTime FSRTier = "PART_TIME"
	FSRFullTime FSRTier = "FULL_TIME"
)

// ParseFSRTier validates a stored tier. The empty string is not a tier.
func ParseFSRTier(s string) (FSRTier, error) {
	switch t := FSRTier(s); t {
	case FSRNone, FSRPartTime, FSRFullTime:
		return t, nil
	}
	return "", fmt.Errorf("unknown fsr tier %q", s)
}

// ParseFSRTierInput normalizes a tier from a request. Case and surrounding
// space are ignored; an omitted tier means NONE.
func ParseFSRTierInput(s string) (FSRTier, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return FSRNone, nil
	}
	return ParseFSRTier(s)
}

// Exercise is a planned or running operation that systems are assigned to.
type Exercise struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	StartDate   *time.Time     `json:"start_date,omitempty"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
	Status      ExerciseStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Systems []*ExerciseSystem `json:"systems,omitempty"`
}

// ExerciseInput is the request payload for creating an exercise.
type ExerciseInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	Status      ExerciseStatus `json:"status"`
}

// ExerciseSystem assigns one system to one exercise.
type ExerciseSystem struct {
	ID             string                      `json:"id"`
	ExerciseID     string                      `json:"exercise_id"`
	SystemID       string                      `json:"system_id"`
	Quantity       int                         `json:"quantity"`
	FSRSupport     FSRTier                     `json:"fsr_support"`
	FSRCost        *float64                    `json:"fsr_cost,omitempty"`
	LaunchesPerDay *float64                    `json:"launches_per_day,omitempty"`
	Consumables    []*ExerciseSystemConsumable `json:"consumables"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`

	System *System `json:"system,omitempty"`
}

// ExerciseSystemConsumable is one consumable preset selected for an assignment.
// A nil Quantity falls back to the preset's default quantity.
type ExerciseSystemConsumable struct {
	ID       string            `json:"id"`
	PresetID string            `json:"preset_id"`
	Quantity *float64          `json:"quantity,omitempty"`
	Preset   *ConsumablePreset `json:"preset,omitempty"`
}

// ExerciseSystemInput is the request payload for adding a system to an exercise.
type ExerciseSystemInput struct {
	SystemID       string                     `json:"system_id"`
	Quantity       int                        `json:"quantity"`
	FSRSupport     string                     `json:"fsr_support"`
	FSRCost        *float64                   `json:"fsr_cost"`
	LaunchesPerDay *float64                   `json:"launches_per_day"`
	Consumables    []ConsumableSelectionInput `json:"consumables"`
}

// ConsumableSelectionInput picks a preset with an optional quantity override.
type ConsumableSelectionInput struct {
	PresetID string   `json:"preset_id"`
	Quantity *float64 `json:"quantity"`
}
