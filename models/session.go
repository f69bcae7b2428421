package models

// SearchForm holds the trip parameters collected at the search stage.
// Destination, Budget, TripType and Party are required; TripLength defaults
// to 1 and Interests may be empty.
type SearchForm struct {
	Destination string   `json:"destination" bson:"destination"`
	TripLength  int      `json:"tripLength" bson:"trip_length"`
	Budget      string   `json:"budget" bson:"budget"`
	TripType    string   `json:"tripType" bson:"trip_type"`
	Party       string   `json:"party" bson:"party"`
	Interests   []string `json:"interests" bson:"interests"`
}

// SearchSession is the hand-off record written by the search stage and read
// by the place-selection stage. Form fields and raw results are never mutated
// afterwards; only SelectedPlaces changes as the user toggles places.
type SearchSession struct {
	SearchForm        `bson:",inline"`
	ResultsByCategory map[string][]Place `json:"resultsByCategory" bson:"results_by_category"`
	SelectedPlaces    map[string][]Place `json:"selectedPlaces,omitempty" bson:"selected_places,omitempty"`
}

// ItineraryData is the hand-off record written by the generate operation and
// rendered by the itinerary stage.
type ItineraryData struct {
	SearchForm        `bson:",inline"`
	ResultsByCategory map[string][]Place `json:"resultsByCategory,omitempty" bson:"results_by_category,omitempty"`
	SelectedPlaces    map[string][]Place `json:"selectedPlaces" bson:"selected_places"`
	Itinerary         Itinerary          `json:"itinerary" bson:"itinerary"`
}
