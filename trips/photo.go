package trips

import (
	"context"
	"log"
	"sort"
	"time"

	"tripcraft/models"
	"tripcraft/rdx"
)

// PhotoSource resolves trip imagery, implemented by the places client.
type PhotoSource interface {
	DestinationPhoto(ctx context.Context, destination string) (string, error)
	PhotoURL(photoReference string, maxWidth int) string
}

const photoCacheTTL = 30 * time.Minute

// embeddedTripPhoto finds a photo already carried by the trip: selected
// places first, then raw search results, photo_url preferred over
// photo_reference. Categories are walked in sorted order for stable picks.
func embeddedTripPhoto(trip *models.SavedTrip, photos PhotoSource) string {
	for _, byCategory := range []map[string][]models.Place{trip.SelectedPlaces, trip.ResultsByCategory} {
		categories := make([]string, 0, len(byCategory))
		for category := range byCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		for _, category := range categories {
			places := byCategory[category]
			if len(places) == 0 {
				continue
			}
			if places[0].PhotoURL != "" {
				return places[0].PhotoURL
			}
			if places[0].PhotoReference != "" {
				return photos.PhotoURL(places[0].PhotoReference, 400)
			}
		}
	}
	return ""
}

// resolveTripPhoto returns a representative photo URL for a trip card. Trips
// without embedded imagery cost one destination-photo lookup, cached per
// trip id for the session. Failures degrade to no photo.
func resolveTripPhoto(ctx context.Context, trip *models.SavedTrip, photos PhotoSource) string {
	if u := embeddedTripPhoto(trip, photos); u != "" {
		return u
	}

	cacheKey := "tripphoto:" + trip.TripID
	if rdx.Conn != nil {
		if u, err := rdx.RdxGet(cacheKey); err == nil && u != "" {
			return u
		}
	}

	u, err := photos.DestinationPhoto(ctx, trip.Destination)
	if err != nil {
		log.Printf("destination photo for trip %s: %v", trip.TripID, err)
		return ""
	}

	if rdx.Conn != nil {
		if err := rdx.SetWithExpiry(cacheKey, u, photoCacheTTL); err != nil {
			log.Printf("trip photo cache write: %v", err)
		}
	}
	return u
}
