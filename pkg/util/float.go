package util

import (
	"math"
	"strconv"
)

// Round2 rounds to 2 decimal places, the precision of every price in
// the API contract.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
