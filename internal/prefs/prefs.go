// Package prefs holds the housing-search preference model and the
// client-side validation that gates every save.
package prefs

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Bounds accepted by the backend. Values outside these never leave the client.
const (
	PriceMin = 55000
	PriceMax = 840000000
	AreaMin  = 70
	AreaMax  = 35000
)

// AllowedCities is the fixed set the backend indexes, in display order.
var AllowedCities = []string{
	"Thane",
	"Bangalore",
	"Mumbai",
	"New Delhi",
	"Kolkata",
	"Chennai",
	"Pune",
	"Hyderabad",
}

// Preferences is the single current snapshot of the user's search criteria.
// Numeric fields are float64 so unparsed form input can travel as NaN and be
// rejected by Validate instead of panicking somewhere downstream.
type Preferences struct {
	MinPrice        float64  `json:"min_price"`
	MaxPrice        float64  `json:"max_price"`
	MinArea         float64  `json:"min_area"`
	MaxArea         float64  `json:"max_area"`
	PreferredCities []string `json:"preferred_cities"`
}

// ParseAmount converts form input to a number. Empty or garbage input maps
// to NaN so Validate reports "required" rather than a range violation.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Validate checks a snapshot in a fixed order and returns the first failure.
// It is total: any input shape yields either nil or a form-level message.
func Validate(p Preferences) error {
	if !isFinite(p.MinPrice) {
		return errors.New("Min price is required.")
	}
	if !isFinite(p.MaxPrice) {
		return errors.New("Max price is required.")
	}
	if !isFinite(p.MinArea) {
		return errors.New("Min area is required.")
	}
	if !isFinite(p.MaxArea) {
		return errors.New("Max area is required.")
	}
	if p.MinPrice < PriceMin || p.MinPrice > PriceMax {
		return fmt.Errorf("Min price must be between %d and %d.", PriceMin, PriceMax)
	}
	if p.MaxPrice < PriceMin || p.MaxPrice > PriceMax {
		return fmt.Errorf("Max price must be between %d and %d.", PriceMin, PriceMax)
	}
	if p.MinPrice > p.MaxPrice {
		return errors.New("Min price cannot be higher than max price.")
	}
	if p.MinArea < AreaMin || p.MinArea > AreaMax {
		return fmt.Errorf("Min area must be between %d and %d sq ft.", AreaMin, AreaMax)
	}
	if p.MaxArea < AreaMin || p.MaxArea > AreaMax {
		return fmt.Errorf("Max area must be between %d and %d sq ft.", AreaMin, AreaMax)
	}
	if p.MinArea > p.MaxArea {
		return errors.New("Min area cannot be higher than max area.")
	}
	if len(p.PreferredCities) == 0 {
		return errors.New("Select at least one preferred city.")
	}
	for _, city := range p.PreferredCities {
		if !IsAllowedCity(city) {
			return errors.New("One or more selected cities are not supported.")
		}
	}
	return nil
}

// IsAllowedCity reports exact membership; matching is case-sensitive because
// the backend stores cities as canonical display names.
func IsAllowedCity(name string) bool {
	for _, c := range AllowedCities {
		if c == name {
			return true
		}
	}
	return false
}

// ClosestCity finds the allowed city nearest to the typed input. Prefix
// matches win outright; otherwise the smallest edit distance does. Returns
// false for empty input or when nothing is remotely close.
func ClosestCity(input string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(input))
	if q == "" {
		return "", false
	}
	best, bestDist := "", math.MaxInt
	for _, c := range AllowedCities {
		lc := strings.ToLower(c)
		if strings.HasPrefix(lc, q) {
			return c, true
		}
		if d := levenshtein.ComputeDistance(q, lc); d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist > len(best)/2 {
		return "", false
	}
	return best, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
