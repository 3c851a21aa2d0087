// Package project turns server conversation state into render-ready data.
// It is pure: no I/O, no DOM/TUI knowledge, so any consumer can display the
// result.
package project

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/jask/findmyhome/internal/api"
	"github.com/jask/findmyhome/internal/prefs"
)

const notAvailable = "N/A"

// RenderModel is the normalized projection of the latest turn.
type RenderModel struct {
	Empty      bool
	Question   string
	Answer     string
	Properties []PropertyCard
}

// PropertyCard is one recommendation, fully formatted for display.
type PropertyCard struct {
	Title        string
	Meta         string
	Price        string
	Area         string
	Beds         string
	Baths        string
	PricePerSqft string
	Balcony      string // "", "Balcony" or "No balcony"
	Description  string
}

// Projector carries the display markers applied to numeric fields.
type Projector struct {
	Currency string
	AreaUnit string
}

// Default matches the backend's market: rupees and square feet.
func Default() Projector {
	return Projector{Currency: "Rs.", AreaUnit: "sq ft"}
}

// Project reduces conversation state to the latest turn. No turns yields the
// explicit empty model. Malformed property entries are skipped, never an
// error.
func (pr Projector) Project(state api.RecommendationState) RenderModel {
	if len(state.TurnLog) == 0 {
		return RenderModel{Empty: true}
	}
	last := state.TurnLog[len(state.TurnLog)-1]

	question := last.Question
	if question == "" {
		question = last.QueryUsed
	}
	answer := last.Answer
	if answer == "" {
		answer = state.AugmentationSummary
	}

	cards := make([]PropertyCard, 0, len(last.RecommendedProperties))
	for _, raw := range last.RecommendedProperties {
		if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		var p api.Property
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		cards = append(cards, pr.card(p))
	}
	return RenderModel{Question: question, Answer: answer, Properties: cards}
}

// CountLabel summarizes the property list for the results header.
func (m RenderModel) CountLabel() string {
	if len(m.Properties) == 0 {
		return "No homes yet"
	}
	if len(m.Properties) == 1 {
		return "1 home"
	}
	return strconv.Itoa(len(m.Properties)) + " homes"
}

// PreferencesSummary renders a saved snapshot as display lines, or the
// "nothing saved" line for nil.
func (pr Projector) PreferencesSummary(p *prefs.Preferences) []string {
	if p == nil {
		return []string{"No preferences saved yet."}
	}
	cities := "None selected"
	if len(p.PreferredCities) > 0 {
		cities = strings.Join(p.PreferredCities, ", ")
	}
	return []string{
		"Price range: " + pr.FormatPrice(p.MinPrice) + " to " + pr.FormatPrice(p.MaxPrice),
		"Area range: " + pr.FormatArea(p.MinArea) + " to " + pr.FormatArea(p.MaxArea),
		"Preferred cities: " + cities,
	}
}

func (pr Projector) card(p api.Property) PropertyCard {
	title := p.Name
	if title == "" {
		title = "Unnamed property"
	}

	var meta []string
	for _, part := range []string{p.CityName, p.PropertyType, p.RoomType} {
		if part != "" {
			meta = append(meta, part)
		}
	}

	balcony := ""
	if p.HasBalcony != nil {
		if *p.HasBalcony {
			balcony = "Balcony"
		} else {
			balcony = "No balcony"
		}
	}

	return PropertyCard{
		Title:        title,
		Meta:         strings.Join(meta, " | "),
		Price:        pr.formatPricePtr(p.Price),
		Area:         pr.formatAreaPtr(p.TotalArea),
		Beds:         formatCount(p.Beds),
		Baths:        formatCount(p.Baths),
		PricePerSqft: pr.formatPricePtr(p.PricePerSqft),
		Balcony:      balcony,
		Description:  p.Description,
	}
}

// FormatNumber renders a finite value with comma-grouped digits, otherwise
// the not-available marker.
func FormatNumber(v float64) string {
	if !isFinite(v) {
		return notAvailable
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
		if len(frac) > 3 {
			frac = frac[:3]
		}
	}
	grouped := groupThousands(intPart)
	if neg {
		grouped = "-" + grouped
	}
	if frac != "" {
		grouped += "." + frac
	}
	return grouped
}

// FormatPrice prefixes the currency marker, e.g. "Rs. 1,500,000".
func (pr Projector) FormatPrice(v float64) string {
	if !isFinite(v) {
		return notAvailable
	}
	return pr.Currency + " " + FormatNumber(v)
}

// FormatArea suffixes the area unit, e.g. "1,200 sq ft".
func (pr Projector) FormatArea(v float64) string {
	if !isFinite(v) {
		return notAvailable
	}
	return FormatNumber(v) + " " + pr.AreaUnit
}

func (pr Projector) formatPricePtr(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return pr.FormatPrice(*v)
}

func (pr Projector) formatAreaPtr(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return pr.FormatArea(*v)
}

// formatCount renders bed/bath counts plainly, without grouping or units.
func formatCount(v *float64) string {
	if v == nil || !isFinite(*v) {
		return notAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
