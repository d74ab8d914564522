package model

import "github.com/shopspring/decimal"

// RoundCurrency rounds a monetary value half away from zero to 2 decimal places.
// Only response builders call this; accumulation always runs on unrounded values.
func RoundCurrency(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// RoundPercent rounds a percentage to 2 decimal places.
func RoundPercent(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
