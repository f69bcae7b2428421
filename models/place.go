package models

// Place is a point-of-interest record as returned by the places provider.
// Within a category a place is identified by name alone; selection toggling
// and dedupe both rely on that, so two real places sharing a name collide.
type Place struct {
	Name             string  `json:"name" bson:"name"`
	Address          string  `json:"address,omitempty" bson:"address,omitempty"`
	Rating           float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	UserRatingsTotal int     `json:"user_ratings_total,omitempty" bson:"user_ratings_total,omitempty"`
	PriceLevel       int     `json:"price_level,omitempty" bson:"price_level,omitempty"`
	OpenNow          *bool   `json:"open_now,omitempty" bson:"open_now,omitempty"`
	PhotoURL         string  `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	PhotoReference   string  `json:"photo_reference,omitempty" bson:"photo_reference,omitempty"`
	Category         string  `json:"category,omitempty" bson:"category,omitempty"`
}

// Prediction is one autocomplete suggestion.
type Prediction struct {
	PlaceID              string                `json:"place_id"`
	Description          string                `json:"description"`
	StructuredFormatting *StructuredFormatting `json:"structured_formatting,omitempty"`
}

type StructuredFormatting struct {
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text,omitempty"`
}
