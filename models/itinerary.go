package models

import "time"

// Itinerary is the day-by-day plan produced by the generator.
type Itinerary struct {
	Days []Day `json:"days" bson:"days"`
}

// Day numbers are 1-based and unique within an itinerary.
type Day struct {
	Day        int        `json:"day" bson:"day"`
	Activities []Activity `json:"activities" bson:"activities"`
}

type Activity struct {
	Time           string `json:"time" bson:"time"`
	Name           string `json:"name" bson:"name"`
	Description    string `json:"description" bson:"description"`
	Cost           string `json:"cost,omitempty" bson:"cost,omitempty"`
	Tips           string `json:"tips,omitempty" bson:"tips,omitempty"`
	PhotoURL       string `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	PhotoReference string `json:"photo_reference,omitempty" bson:"photo_reference,omitempty"`
}

// ItineraryRequest is the payload sent to the itinerary generator.
type ItineraryRequest struct {
	Destination string   `json:"destination"`
	Places      []Place  `json:"places"`
	TripLength  int      `json:"trip_length"`
	Budget      string   `json:"budget"`
	TripType    string   `json:"trip_type"`
	Party       string   `json:"party"`
	Interests   []string `json:"interests"`
}

// SavedTrip is a persisted trip. It is the normalized subset of ItineraryData
// plus store-assigned identity and timestamps; immutable once created.
type SavedTrip struct {
	TripID            string             `json:"id" bson:"tripid"`
	UserID            string             `json:"userId" bson:"user_id"`
	Destination       string             `json:"destination" bson:"destination"`
	TripLength        int                `json:"tripLength" bson:"trip_length"`
	Budget            string             `json:"budget" bson:"budget"`
	TripType          string             `json:"tripType" bson:"trip_type"`
	Party             string             `json:"party" bson:"party"`
	Interests         []string           `json:"interests" bson:"interests"`
	SelectedPlaces    map[string][]Place `json:"selectedPlaces,omitempty" bson:"selected_places,omitempty"`
	ResultsByCategory map[string][]Place `json:"resultsByCategory,omitempty" bson:"results_by_category,omitempty"`
	Itinerary         Itinerary          `json:"itinerary" bson:"itinerary"`
	CreatedAt         time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updated_at"`
}
