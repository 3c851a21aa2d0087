package project

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/jask/findmyhome/internal/api"
	"github.com/jask/findmyhome/internal/prefs"
)

func TestProjectEmptyState(t *testing.T) {
	m := Default().Project(api.RecommendationState{})
	if !m.Empty {
		t.Fatal("no turns must yield the empty model")
	}
	if m.CountLabel() != "No homes yet" {
		t.Fatalf("count label = %q", m.CountLabel())
	}
}

func TestProjectUsesLastTurn(t *testing.T) {
	state := api.RecommendationState{
		TurnLog: []api.Turn{
			{Question: "first", Answer: "old answer"},
			{Question: "show me flats in Pune", Answer: "Here are some options."},
		},
	}
	m := Default().Project(state)
	if m.Empty {
		t.Fatal("model should not be empty")
	}
	if m.Question != "show me flats in Pune" {
		t.Fatalf("question = %q", m.Question)
	}
	if m.Answer != "Here are some options." {
		t.Fatalf("answer = %q", m.Answer)
	}
}

func TestProjectFallbacks(t *testing.T) {
	state := api.RecommendationState{
		AugmentationSummary: "Expanded your search to nearby areas.",
		TurnLog: []api.Turn{
			{QueryUsed: "2bhk pune under 50L"},
		},
	}
	m := Default().Project(state)
	if m.Question != "2bhk pune under 50L" {
		t.Fatalf("question fallback = %q", m.Question)
	}
	if m.Answer != "Expanded your search to nearby areas." {
		t.Fatalf("answer fallback = %q", m.Answer)
	}
}

func TestProjectSkipsMalformedProperties(t *testing.T) {
	good := json.RawMessage(`{"name":"Sunrise Towers","cityName":"Pune","price":1500000,"totalArea":1200,"beds":2,"baths":2,"hasBalcony":true}`)
	state := api.RecommendationState{
		TurnLog: []api.Turn{{
			Question: "q",
			RecommendedProperties: []json.RawMessage{
				good,
				json.RawMessage(`null`),
				json.RawMessage(`"just a string"`),
				json.RawMessage(`[1,2,3]`),
			},
		}},
	}
	m := Default().Project(state)
	if len(m.Properties) != 1 {
		t.Fatalf("got %d cards, want 1", len(m.Properties))
	}
	card := m.Properties[0]
	if card.Title != "Sunrise Towers" {
		t.Fatalf("title = %q", card.Title)
	}
	if card.Price != "Rs. 1,500,000" {
		t.Fatalf("price = %q", card.Price)
	}
	if card.Area != "1,200 sq ft" {
		t.Fatalf("area = %q", card.Area)
	}
	if card.Balcony != "Balcony" {
		t.Fatalf("balcony = %q", card.Balcony)
	}
	if m.CountLabel() != "1 home" {
		t.Fatalf("count label = %q", m.CountLabel())
	}
}

func TestCardMissingFields(t *testing.T) {
	state := api.RecommendationState{
		TurnLog: []api.Turn{{
			RecommendedProperties: []json.RawMessage{json.RawMessage(`{}`)},
		}},
	}
	m := Default().Project(state)
	if len(m.Properties) != 1 {
		t.Fatalf("got %d cards", len(m.Properties))
	}
	card := m.Properties[0]
	if card.Title != "Unnamed property" {
		t.Fatalf("title = %q", card.Title)
	}
	for name, got := range map[string]string{
		"price": card.Price, "area": card.Area,
		"beds": card.Beds, "baths": card.Baths,
		"price per sq ft": card.PricePerSqft,
	} {
		if got != "N/A" {
			t.Fatalf("%s = %q, want N/A", name, got)
		}
	}
	if card.Balcony != "" {
		t.Fatalf("balcony = %q, want empty for unknown", card.Balcony)
	}
}

func TestCardMeta(t *testing.T) {
	raw := json.RawMessage(`{"cityName":"Mumbai","property_type":"Apartment","room_type":"2 BHK"}`)
	m := Default().Project(api.RecommendationState{
		TurnLog: []api.Turn{{RecommendedProperties: []json.RawMessage{raw}}},
	})
	if got := m.Properties[0].Meta; got != "Mumbai | Apartment | 2 BHK" {
		t.Fatalf("meta = %q", got)
	}
}

func TestCountLabelPlural(t *testing.T) {
	m := RenderModel{Properties: make([]PropertyCard, 3)}
	if m.CountLabel() != "3 homes" {
		t.Fatalf("count label = %q", m.CountLabel())
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1500000, "1,500,000"},
		{840000000, "840,000,000"},
		{999, "999"},
		{1000, "1,000"},
		{-12345, "-12,345"},
		{1234.5678, "1,234.567"},
		{math.NaN(), "N/A"},
		{math.Inf(1), "N/A"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPriceAndArea(t *testing.T) {
	pr := Default()
	if got := pr.FormatPrice(1500000); got != "Rs. 1,500,000" {
		t.Fatalf("price = %q", got)
	}
	if got := pr.FormatPrice(math.NaN()); got != "N/A" {
		t.Fatalf("NaN price = %q", got)
	}
	if got := pr.FormatArea(1200); got != "1,200 sq ft" {
		t.Fatalf("area = %q", got)
	}
}

func TestPreferencesSummary(t *testing.T) {
	pr := Default()
	lines := pr.PreferencesSummary(nil)
	if len(lines) != 1 || lines[0] != "No preferences saved yet." {
		t.Fatalf("nil summary = %v", lines)
	}

	p := &prefs.Preferences{
		MinPrice:        100000,
		MaxPrice:        5000000,
		MinArea:         400,
		MaxArea:         2000,
		PreferredCities: []string{"Mumbai", "Pune"},
	}
	lines = pr.PreferencesSummary(p)
	want := []string{
		"Price range: Rs. 100,000 to Rs. 5,000,000",
		"Area range: 400 sq ft to 2,000 sq ft",
		"Preferred cities: Mumbai, Pune",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines", len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
