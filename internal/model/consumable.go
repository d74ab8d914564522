package model

import "time"

// Consumable is a supply item with a unit cost (fuel, gas, batteries, ...).
type Consumable struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Unit            string    `json:"unit"`
	CurrentUnitCost *float64  `json:"current_unit_cost,omitempty"`
	Category        string    `json:"category,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ConsumableInput is the request payload for creating a consumable.
type ConsumableInput struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Unit            string   `json:"unit"`
	CurrentUnitCost *float64 `json:"current_unit_cost"`
	Category        string   `json:"category"`
	Notes           string   `json:"notes"`
}

// ConsumablePreset is the default monthly quantity of a consumable used by a system.
type ConsumablePreset struct {
	ID           string      `json:"id"`
	SystemID     string      `json:"system_id"`
	ConsumableID string      `json:"consumable_id"`
	Name         string      `json:"name"`
	Quantity     float64     `json:"quantity"`
	Notes        string      `json:"notes,omitempty"`
	Consumable   *Consumable `json:"consumable,omitempty"`
}

// ConsumablePresetInput is the request payload for attaching a preset to a system.
type ConsumablePresetInput struct {
	ConsumableID string  `json:"consumable_id"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Notes        string  `json:"notes"`
}
