package trips

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"tripcraft/models"
)

type stubPhotos struct {
	destCalls int
	destURL   string
	destErr   error
}

func (s *stubPhotos) DestinationPhoto(_ context.Context, _ string) (string, error) {
	s.destCalls++
	return s.destURL, s.destErr
}

func (s *stubPhotos) PhotoURL(ref string, maxWidth int) string {
	return fmt.Sprintf("photo://%s@%d", ref, maxWidth)
}

func TestEmbeddedTripPhotoPrecedence(t *testing.T) {
	photos := &stubPhotos{}

	trip := &models.SavedTrip{
		SelectedPlaces: map[string][]models.Place{
			"museums": {{Name: "Louvre", PhotoURL: "https://img.example/louvre.jpg"}},
		},
		ResultsByCategory: map[string][]models.Place{
			"food": {{Name: "Bistro", PhotoURL: "https://img.example/bistro.jpg"}},
		},
	}
	if u := embeddedTripPhoto(trip, photos); u != "https://img.example/louvre.jpg" {
		t.Fatalf("selected places should win, got %q", u)
	}

	trip.SelectedPlaces = nil
	if u := embeddedTripPhoto(trip, photos); u != "https://img.example/bistro.jpg" {
		t.Fatalf("results should be the fallback, got %q", u)
	}

	trip.ResultsByCategory = map[string][]models.Place{
		"food": {{Name: "Bistro", PhotoReference: "ref-bistro"}},
	}
	if u := embeddedTripPhoto(trip, photos); u != "photo://ref-bistro@400" {
		t.Fatalf("photo reference should resolve through the photo endpoint, got %q", u)
	}

	trip.ResultsByCategory = nil
	if u := embeddedTripPhoto(trip, photos); u != "" {
		t.Fatalf("trip without imagery should yield empty, got %q", u)
	}
}

func TestResolveTripPhotoFetchesDestinationOnce(t *testing.T) {
	photos := &stubPhotos{destURL: "https://img.example/tokyo.jpg"}
	trip := &models.SavedTrip{TripID: "t1", Destination: "Tokyo"}

	if u := resolveTripPhoto(context.Background(), trip, photos); u != "https://img.example/tokyo.jpg" {
		t.Fatalf("expected destination photo, got %q", u)
	}
	if photos.destCalls != 1 {
		t.Fatalf("expected one lookup, got %d", photos.destCalls)
	}
}

func TestResolveTripPhotoPrefersEmbedded(t *testing.T) {
	photos := &stubPhotos{destURL: "https://img.example/tokyo.jpg"}
	trip := &models.SavedTrip{
		TripID:      "t1",
		Destination: "Tokyo",
		SelectedPlaces: map[string][]models.Place{
			"temples": {{Name: "Sensō-ji", PhotoURL: "https://img.example/sensoji.jpg"}},
		},
	}

	if u := resolveTripPhoto(context.Background(), trip, photos); u != "https://img.example/sensoji.jpg" {
		t.Fatalf("embedded photo should win, got %q", u)
	}
	if photos.destCalls != 0 {
		t.Fatalf("embedded photo must not trigger a lookup, got %d", photos.destCalls)
	}
}

func TestResolveTripPhotoSwallowsFailure(t *testing.T) {
	photos := &stubPhotos{destErr: errors.New("quota exceeded")}
	trip := &models.SavedTrip{TripID: "t1", Destination: "Tokyo"}

	if u := resolveTripPhoto(context.Background(), trip, photos); u != "" {
		t.Fatalf("failed lookup should degrade to no photo, got %q", u)
	}
}

func TestBuildTripPDF(t *testing.T) {
	trip := &models.SavedTrip{
		TripID:      "t1",
		Destination: "Paris",
		TripLength:  2,
		Budget:      "moderate",
		TripType:    "sightseeing",
		Party:       "couple",
		Itinerary: models.Itinerary{Days: []models.Day{
			{Day: 1, Activities: []models.Activity{
				{Time: "9:00 AM - 11:00 AM", Name: "Louvre", Description: "Art museum", Tips: "Book ahead", Cost: "$20"},
				{Time: "1:00 PM - 3:00 PM", Name: "Seine walk"},
			}},
			{Day: 2, Activities: []models.Activity{
				{Time: "10:00 AM", Name: "Versailles", Description: "Day trip"},
			}},
		}},
	}

	out, err := BuildTripPDF(trip, nil)
	if err != nil {
		t.Fatalf("BuildTripPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF (starts with %q)", out[:min(8, len(out))])
	}
}
