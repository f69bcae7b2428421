package planner

import (
	"errors"
	"strings"
	"testing"

	"tripcraft/models"
)

func TestParseItineraryPlainJSON(t *testing.T) {
	itin, err := ParseItinerary(`{"days":[{"day":1,"activities":[{"time":"9:00 AM","name":"Louvre","description":"Art museum"}]}]}`)
	if err != nil {
		t.Fatalf("ParseItinerary: %v", err)
	}
	if len(itin.Days) != 1 || itin.Days[0].Activities[0].Name != "Louvre" {
		t.Fatalf("unexpected itinerary: %+v", itin)
	}
}

func TestParseItineraryStripsMarkdownFence(t *testing.T) {
	replies := []string{
		"```json\n{\"days\":[{\"day\":1,\"activities\":[]}]}\n```",
		"```\n{\"days\":[{\"day\":1,\"activities\":[]}]}\n```",
		"Here is your plan:\n{\"days\":[{\"day\":1,\"activities\":[]}]}\nEnjoy!",
	}
	for _, reply := range replies {
		itin, err := ParseItinerary(reply)
		if err != nil {
			t.Errorf("ParseItinerary(%q): %v", reply, err)
			continue
		}
		if len(itin.Days) != 1 || itin.Days[0].Day != 1 {
			t.Errorf("ParseItinerary(%q) = %+v", reply, itin)
		}
	}
}

func TestParseItineraryMalformed(t *testing.T) {
	replies := []string{
		"",
		"I cannot plan this trip.",
		"{\"days\": oops}",
		"{\"days\":[]}",
		"{\"itinerary\":\"none\"}",
	}
	for _, reply := range replies {
		if _, err := ParseItinerary(reply); !errors.Is(err, ErrMalformedItinerary) {
			t.Errorf("ParseItinerary(%q): expected ErrMalformedItinerary, got %v", reply, err)
		}
	}
}

func TestBuildPromptUsesSelectedAttractions(t *testing.T) {
	req := models.ItineraryRequest{
		Destination: "Tokyo",
		TripLength:  2,
		Budget:      "moderate",
		TripType:    "foodie",
		Party:       "friends",
		Interests:   []string{"ramen"},
		Places:      []models.Place{{Name: "Tsukiji Market"}, {Name: "Shibuya Crossing"}},
	}
	prompt := buildPrompt(req)

	if !strings.Contains(prompt, "Tsukiji Market, Shibuya Crossing") {
		t.Fatalf("attractions missing from prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Generate exactly 2 days") {
		t.Fatalf("day count missing from prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Destination: Tokyo") {
		t.Fatalf("destination missing from prompt:\n%s", prompt)
	}
}

func TestBuildPromptFallsBackToInterests(t *testing.T) {
	req := models.ItineraryRequest{
		Destination: "Tokyo",
		Budget:      "budget",
		Party:       "alone",
		Interests:   []string{"temples", "gardens"},
	}
	prompt := buildPrompt(req)

	if !strings.Contains(prompt, "temples, gardens") {
		t.Fatalf("interests missing from prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Generate exactly 1 days") {
		t.Fatalf("zero trip length should default to 1:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Vibe/General Interests: general") {
		t.Fatalf("empty trip type should read as general:\n%s", prompt)
	}
}

func TestFlattenSelectionOrderAndTagging(t *testing.T) {
	selection := map[string][]models.Place{
		"museums": {{Name: "Louvre"}},
		"food":    {{Name: "Le Comptoir"}, {Name: "Breizh Café"}},
	}
	flat := FlattenSelection(selection)

	want := []struct{ name, category string }{
		{"Le Comptoir", "food"},
		{"Breizh Café", "food"},
		{"Louvre", "museums"},
	}
	if len(flat) != len(want) {
		t.Fatalf("expected %d places, got %d", len(want), len(flat))
	}
	for i, w := range want {
		if flat[i].Name != w.name || flat[i].Category != w.category {
			t.Errorf("flat[%d] = %s/%s, want %s/%s", i, flat[i].Name, flat[i].Category, w.name, w.category)
		}
	}
}
