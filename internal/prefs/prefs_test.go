package prefs

import (
	"math"
	"testing"
)

func valid() Preferences {
	return Preferences{
		MinPrice:        100000,
		MaxPrice:        5000000,
		MinArea:         400,
		MaxArea:         2000,
		PreferredCities: []string{"Mumbai", "Pune"},
	}
}

func TestValidateOK(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("valid preferences rejected: %v", err)
	}
}

func TestValidateMessages(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Preferences)
		want   string
	}{
		{"missing min price", func(p *Preferences) { p.MinPrice = math.NaN() }, "Min price is required."},
		{"missing max price", func(p *Preferences) { p.MaxPrice = math.NaN() }, "Max price is required."},
		{"missing min area", func(p *Preferences) { p.MinArea = math.NaN() }, "Min area is required."},
		{"missing max area", func(p *Preferences) { p.MaxArea = math.Inf(1) }, "Max area is required."},
		{"min price below bound", func(p *Preferences) { p.MinPrice = 54999 }, "Min price must be between 55000 and 840000000."},
		{"max price above bound", func(p *Preferences) { p.MaxPrice = 840000001 }, "Max price must be between 55000 and 840000000."},
		{"min area below bound", func(p *Preferences) { p.MinArea = 69 }, "Min area must be between 70 and 35000 sq ft."},
		{"max area above bound", func(p *Preferences) { p.MaxArea = 35001 }, "Max area must be between 70 and 35000 sq ft."},
		{"no cities", func(p *Preferences) { p.PreferredCities = nil }, "Select at least one preferred city."},
		{"unknown city", func(p *Preferences) { p.PreferredCities = []string{"Mumbai", "Atlantis"} }, "One or more selected cities are not supported."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid()
			tc.mutate(&p)
			err := Validate(p)
			if err == nil {
				t.Fatalf("expected error %q, got nil", tc.want)
			}
			if err.Error() != tc.want {
				t.Fatalf("error = %q, want %q", err.Error(), tc.want)
			}
		})
	}
}

// A reversed pair where both values are individually in range must report
// the ordering, never a bound.
func TestValidateOrderBeatsRange(t *testing.T) {
	p := valid()
	p.MinPrice, p.MaxPrice = 5000000, 100000
	if got := Validate(p).Error(); got != "Min price cannot be higher than max price." {
		t.Fatalf("price order error = %q", got)
	}

	p = valid()
	p.MinArea, p.MaxArea = 2000, 400
	if got := Validate(p).Error(); got != "Min area cannot be higher than max area." {
		t.Fatalf("area order error = %q", got)
	}
}

// Required checks run before range checks for every field.
func TestValidateRequiredBeatsRange(t *testing.T) {
	p := valid()
	p.MinPrice = 1 // out of range
	p.MaxArea = math.NaN()
	if got := Validate(p).Error(); got != "Max area is required." {
		t.Fatalf("error = %q, want the required message", got)
	}
}

func TestValidateMixedCities(t *testing.T) {
	p := valid()
	p.PreferredCities = []string{"Thane", "Bangalore", "Gotham"}
	if err := Validate(p); err == nil || err.Error() != "One or more selected cities are not supported." {
		t.Fatalf("expected unsupported-city error, got %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	if got := ParseAmount(" 55000 "); got != 55000 {
		t.Fatalf("ParseAmount = %v", got)
	}
	if got := ParseAmount("abc"); !math.IsNaN(got) {
		t.Fatalf("garbage input should be NaN, got %v", got)
	}
	if got := ParseAmount(""); !math.IsNaN(got) {
		t.Fatalf("empty input should be NaN, got %v", got)
	}
}

func TestClosestCity(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"mum", "Mumbai", true},
		{"new", "New Delhi", true},
		{"Bangalor", "Bangalore", true},
		{"thane", "Thane", true},
		{"", "", false},
		{"zzzzzzzz", "", false},
	}
	for _, tc := range cases {
		got, ok := ClosestCity(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ClosestCity(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
