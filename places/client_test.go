package places

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		HTTPC:   &http.Client{Timeout: 2 * time.Second},
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestSearchQueryShaping(t *testing.T) {
	cases := []struct {
		interest string
		want     string
	}{
		{"general", "Rome"},
		{"Nature", "parks nature reserves Rome"},
		{"city parks", "parks nature reserves Rome"},
		{"Nightlife", "bars clubs nightlife Rome"},
		{"beaches", "beaches Rome"},
		{"landmarks", "landmarks monuments Rome"},
		{"museums", "museums in Rome"},
	}
	for _, tc := range cases {
		if got := searchQuery(tc.interest, "Rome"); got != tc.want {
			t.Errorf("searchQuery(%q) = %q, want %q", tc.interest, got, tc.want)
		}
	}
}

func TestSearchPlacesRequiresAPIKey(t *testing.T) {
	c := &Client{HTTPC: http.DefaultClient}
	if _, err := c.SearchPlaces(context.Background(), "Rome", nil); err == nil {
		t.Fatal("expected configuration error without API key")
	}
}

func TestSearchPlacesDedupesAndBuildsPhotoURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/geocode/"):
			writeJSON(w, map[string]any{"results": []any{}})
		case strings.HasPrefix(r.URL.Path, "/place/textsearch/"):
			writeJSON(w, map[string]any{"results": []map[string]any{
				{
					"name":              "Colosseum",
					"formatted_address": "Piazza del Colosseo, Rome, Italy",
					"rating":            4.7,
					"photos":            []map[string]any{{"photo_reference": "ref-col"}},
				},
				{
					"name":              "Colosseum", // duplicate, dropped
					"formatted_address": "Rome, Italy",
				},
				{
					"name":              "Pantheon",
					"formatted_address": "Piazza della Rotonda, Rome, Italy",
					"opening_hours":     map[string]any{"open_now": true},
				},
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := testClient(srv)
	results, err := c.SearchPlaces(context.Background(), "Rome", []string{"landmarks"})
	if err != nil {
		t.Fatalf("SearchPlaces: %v", err)
	}

	landmarks := results["landmarks"]
	if len(landmarks) != 2 {
		t.Fatalf("expected 2 deduped places, got %d", len(landmarks))
	}
	if landmarks[0].PhotoReference != "ref-col" {
		t.Fatalf("photo reference not carried: %+v", landmarks[0])
	}
	if !strings.Contains(landmarks[0].PhotoURL, "photoreference=ref-col") {
		t.Fatalf("photo URL not built: %q", landmarks[0].PhotoURL)
	}
	if landmarks[1].OpenNow == nil || !*landmarks[1].OpenNow {
		t.Fatalf("open_now not carried: %+v", landmarks[1])
	}
}

func TestSearchPlacesFiltersByAddressWhenGeocoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/geocode/"):
			writeJSON(w, map[string]any{"results": []map[string]any{
				{"geometry": map[string]any{"location": map[string]any{"lat": 41.9, "lng": 12.5}}},
			}})
		case strings.HasPrefix(r.URL.Path, "/place/textsearch/"):
			if !strings.Contains(r.URL.RawQuery, "location=") {
				t.Error("geocoded search missing location bias")
			}
			writeJSON(w, map[string]any{"results": []map[string]any{
				{"name": "Pantheon", "formatted_address": "Rome, Italy"},
				{"name": "Duomo", "formatted_address": "Milan, Italy"}, // wrong city
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := testClient(srv)
	results, err := c.SearchPlaces(context.Background(), "Rome", []string{"general"})
	if err != nil {
		t.Fatalf("SearchPlaces: %v", err)
	}
	general := results["general"]
	if len(general) != 1 || general[0].Name != "Pantheon" {
		t.Fatalf("address filter failed: %v", general)
	}
}

func TestSearchPlacesSkipsFailedInterest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/geocode/"):
			writeJSON(w, map[string]any{"results": []any{}})
		case strings.Contains(r.URL.RawQuery, "beaches"):
			w.WriteHeader(http.StatusInternalServerError)
		default:
			writeJSON(w, map[string]any{"results": []map[string]any{
				{"name": "Pantheon", "formatted_address": "Rome, Italy"},
			}})
		}
	}))
	defer srv.Close()

	c := testClient(srv)
	results, err := c.SearchPlaces(context.Background(), "Rome", []string{"beaches", "landmarks"})
	if err != nil {
		t.Fatalf("one failed category must not fail the search: %v", err)
	}
	if len(results["landmarks"]) != 1 {
		t.Fatalf("surviving category missing: %v", results)
	}
	if len(results["beaches"]) != 0 {
		t.Fatalf("failed category should be empty: %v", results["beaches"])
	}
}

func TestAutocompleteShortQuery(t *testing.T) {
	c := &Client{APIKey: "test-key", HTTPC: http.DefaultClient}
	for _, q := range []string{"", "a", " a "} {
		preds, err := c.Autocomplete(context.Background(), q)
		if err != nil {
			t.Fatalf("Autocomplete(%q): %v", q, err)
		}
		if len(preds) != 0 {
			t.Fatalf("Autocomplete(%q) = %v, want empty", q, preds)
		}
	}
}

func TestAutocomplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "types=%28cities%29") && !strings.Contains(r.URL.RawQuery, "types=(cities)") {
			t.Errorf("missing cities type filter: %s", r.URL.RawQuery)
		}
		writeJSON(w, map[string]any{"predictions": []map[string]any{
			{"place_id": "p1", "description": "Paris, France"},
		}})
	}))
	defer srv.Close()

	c := testClient(srv)
	preds, err := c.Autocomplete(context.Background(), "Par")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(preds) != 1 || preds[0].Description != "Paris, France" {
		t.Fatalf("unexpected predictions: %v", preds)
	}
}

func TestDestinationPhotoFallsBackToPlainQuery(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		queries = append(queries, q)
		if strings.Contains(q, "landmarks") {
			writeJSON(w, map[string]any{"results": []map[string]any{
				{"name": "No Photos Here"},
			}})
			return
		}
		writeJSON(w, map[string]any{"results": []map[string]any{
			{"name": "Kyoto Station", "photos": []map[string]any{{"photo_reference": "ref-kyoto"}}},
		}})
	}))
	defer srv.Close()

	c := testClient(srv)
	u, err := c.DestinationPhoto(context.Background(), "Kyoto")
	if err != nil {
		t.Fatalf("DestinationPhoto: %v", err)
	}
	if !strings.Contains(u, "photoreference=ref-kyoto") {
		t.Fatalf("unexpected photo URL %q", u)
	}
	if len(queries) != 2 || queries[0] != "Kyoto landmarks attractions" || queries[1] != "Kyoto" {
		t.Fatalf("unexpected query sequence %v", queries)
	}
}

func TestDestinationPhotoNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"results": []any{}})
	}))
	defer srv.Close()

	c := testClient(srv)
	if _, err := c.DestinationPhoto(context.Background(), "Atlantis"); !errors.Is(err, ErrNoPhoto) {
		t.Fatalf("expected ErrNoPhoto, got %v", err)
	}
}
