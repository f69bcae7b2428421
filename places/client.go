package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"tripcraft/models"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

var ErrNoPhoto = errors.New("no photo found for destination")

// Client talks to the Google Maps web services. BaseURL is swappable so
// tests can point it at a fake server.
type Client struct {
	APIKey  string
	BaseURL string
	HTTPC   *http.Client
}

func NewClient() *Client {
	return &Client{
		APIKey:  os.Getenv("GOOGLE_API_KEY"),
		BaseURL: defaultBaseURL,
		HTTPC:   &http.Client{Timeout: 10 * time.Second},
	}
}

type textSearchResponse struct {
	Results []struct {
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
		PriceLevel       int     `json:"price_level"`
		OpeningHours     *struct {
			OpenNow *bool `json:"open_now"`
		} `json:"opening_hours"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type autocompleteResponse struct {
	Predictions []models.Prediction `json:"predictions"`
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPC.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places API status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// geocode returns "lat,lng" for a destination, or "" when lookup fails.
// Coordinates only bias the search, so failure here is not fatal.
func (c *Client) geocode(ctx context.Context, address string) string {
	u := fmt.Sprintf("%s/geocode/json?address=%s&key=%s", c.BaseURL, url.QueryEscape(address), c.APIKey)
	var res geocodeResponse
	if err := c.getJSON(ctx, u, &res); err != nil || len(res.Results) == 0 {
		return ""
	}
	loc := res.Results[0].Geometry.Location
	return fmt.Sprintf("%f,%f", loc.Lat, loc.Lng)
}

// searchQuery shapes the text-search query per interest. The generic forms
// return too many unrelated hits for these categories.
func searchQuery(interest, destination string) string {
	li := strings.ToLower(interest)
	switch {
	case li == "general":
		return destination
	case strings.Contains(li, "nature"), strings.Contains(li, "park"):
		return "parks nature reserves " + destination
	case strings.Contains(li, "nightlife"):
		return "bars clubs nightlife " + destination
	case strings.Contains(li, "beach"):
		return "beaches " + destination
	case strings.Contains(li, "landmark"):
		return "landmarks monuments " + destination
	default:
		return interest + " in " + destination
	}
}

// SearchPlaces runs one text search per interest ("general" when none were
// picked) and returns results keyed by interest. Within a category places
// are deduped by name. Per-interest request failures skip that category
// rather than failing the whole search.
func (c *Client) SearchPlaces(ctx context.Context, destination string, interests []string) (map[string][]models.Place, error) {
	if c.APIKey == "" {
		return nil, errors.New("GOOGLE_API_KEY is not set")
	}

	terms := interests
	if len(terms) == 0 {
		terms = []string{"general"}
	}

	coords := c.geocode(ctx, destination)
	categorized := make(map[string][]models.Place, len(terms))

	for _, interest := range terms {
		q := searchQuery(interest, destination)
		u := fmt.Sprintf("%s/place/textsearch/json?query=%s&key=%s", c.BaseURL, url.QueryEscape(q), c.APIKey)
		if coords != "" {
			u += "&location=" + coords + "&radius=50000"
		}

		var res textSearchResponse
		if err := c.getJSON(ctx, u, &res); err != nil {
			continue
		}

		seen := make(map[string]bool)
		placesFor := categorized[interest]
		for _, p := range res.Results {
			if p.Name == "" || seen[p.Name] {
				continue
			}
			// With coordinates in hand, drop results whose address does not
			// mention the destination at all; text search drifts otherwise.
			if coords != "" && !strings.Contains(strings.ToLower(p.FormattedAddress), strings.ToLower(destination)) {
				continue
			}

			place := models.Place{
				Name:             p.Name,
				Address:          p.FormattedAddress,
				Rating:           p.Rating,
				UserRatingsTotal: p.UserRatingsTotal,
				PriceLevel:       p.PriceLevel,
			}
			if p.OpeningHours != nil {
				place.OpenNow = p.OpeningHours.OpenNow
			}
			if len(p.Photos) > 0 && p.Photos[0].PhotoReference != "" {
				place.PhotoReference = p.Photos[0].PhotoReference
				place.PhotoURL = c.PhotoURL(p.Photos[0].PhotoReference, 400)
			}

			placesFor = append(placesFor, place)
			seen[p.Name] = true
		}
		categorized[interest] = placesFor
	}

	return categorized, nil
}

// Autocomplete returns city predictions for a partial destination. Queries
// under two characters yield an empty list without a request.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]models.Prediction, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []models.Prediction{}, nil
	}
	if c.APIKey == "" {
		return nil, errors.New("GOOGLE_API_KEY is not set")
	}

	u := fmt.Sprintf("%s/place/autocomplete/json?input=%s&types=(cities)&key=%s", c.BaseURL, url.QueryEscape(query), c.APIKey)
	var res autocompleteResponse
	if err := c.getJSON(ctx, u, &res); err != nil {
		return nil, err
	}
	if res.Predictions == nil {
		res.Predictions = []models.Prediction{}
	}
	return res.Predictions, nil
}

// DestinationPhoto finds a representative photo for a destination: first a
// search for its landmarks and attractions, then a plain search when that
// turns up nothing with imagery.
func (c *Client) DestinationPhoto(ctx context.Context, destination string) (string, error) {
	if c.APIKey == "" {
		return "", errors.New("GOOGLE_API_KEY is not set")
	}

	for _, q := range []string{destination + " landmarks attractions", destination} {
		u := fmt.Sprintf("%s/place/textsearch/json?query=%s&key=%s", c.BaseURL, url.QueryEscape(q), c.APIKey)
		var res textSearchResponse
		if err := c.getJSON(ctx, u, &res); err != nil {
			continue
		}
		for _, p := range res.Results {
			if len(p.Photos) > 0 && p.Photos[0].PhotoReference != "" {
				return c.PhotoURL(p.Photos[0].PhotoReference, 400), nil
			}
		}
	}
	return "", ErrNoPhoto
}

// PhotoURL builds the photo endpoint URL for a photo reference.
func (c *Client) PhotoURL(photoReference string, maxWidth int) string {
	return fmt.Sprintf("%s/place/photo?maxwidth=%d&photoreference=%s&key=%s",
		c.BaseURL, maxWidth, url.QueryEscape(photoReference), c.APIKey)
}
