package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tripcraft/models"
	"tripcraft/planner"
	"tripcraft/utils"
)

var (
	ErrValidation      = errors.New("missing required field")
	ErrUnauthenticated = errors.New("sign in required")
	ErrSaveInFlight    = errors.New("save already in flight")
)

// Searcher is the places capability the search stage calls.
type Searcher interface {
	SearchPlaces(ctx context.Context, destination string, interests []string) (map[string][]models.Place, error)
}

// PhotoResolver turns photo references and destinations into image URLs.
type PhotoResolver interface {
	DestinationPhoto(ctx context.Context, destination string) (string, error)
	PhotoURL(photoReference string, maxWidth int) string
}

// TripSaver is the slice of the trip store the save operation needs.
type TripSaver interface {
	Create(ctx context.Context, ownerID string, data *models.ItineraryData) (string, error)
}

// Pipeline drives the linear Search → Places → Itinerary planning flow over
// the hand-off store. Every stage beyond search guards on the previous
// stage's slot and reports ErrNoSession when it is missing.
type Pipeline struct {
	Searcher  Searcher
	Generator planner.Generator
	Photos    PhotoResolver
	Handoff   Store
	Trips     TripSaver
}

var (
	validBudgets   = map[string]bool{"budget": true, "moderate": true, "luxury": true}
	validTripTypes = map[string]bool{"relaxing": true, "adventurous": true, "sightseeing": true, "shopping": true, "cultural": true, "foodie": true}
	validParties   = map[string]bool{"alone": true, "couple": true, "friends": true, "family": true}
)

func validateForm(form *models.SearchForm) error {
	form.Destination = strings.TrimSpace(form.Destination)
	if form.Destination == "" {
		return fmt.Errorf("%w: destination", ErrValidation)
	}
	if !validBudgets[form.Budget] {
		return fmt.Errorf("%w: budget", ErrValidation)
	}
	if !validTripTypes[form.TripType] {
		return fmt.Errorf("%w: tripType", ErrValidation)
	}
	if !validParties[form.Party] {
		return fmt.Errorf("%w: party", ErrValidation)
	}
	if form.TripLength < 1 {
		form.TripLength = 1
	}
	form.Interests = utils.CleanStrings(form.Interests)
	return nil
}

// StartSearch validates the form, runs the place search and commits the full
// SearchSession to the hand-off slot. Validation failures block before any
// search call; a failed search commits nothing.
func (p *Pipeline) StartSearch(ctx context.Context, sessionID string, form models.SearchForm) (*models.SearchSession, error) {
	if err := validateForm(&form); err != nil {
		return nil, err
	}

	results, err := p.Searcher.SearchPlaces(ctx, form.Destination, form.Interests)
	if err != nil {
		return nil, fmt.Errorf("search places: %w", err)
	}

	sess := &models.SearchSession{SearchForm: form, ResultsByCategory: results}
	if err := p.Handoff.SetSearchData(ctx, sessionID, sess); err != nil {
		return nil, fmt.Errorf("store search session: %w", err)
	}
	return sess, nil
}

// PlacesStage returns the search session for the selection stage, or
// ErrNoSession when the stage was entered directly.
func (p *Pipeline) PlacesStage(ctx context.Context, sessionID string) (*models.SearchSession, error) {
	return p.Handoff.SearchData(ctx, sessionID)
}

// TogglePlace flips membership of a place in the selection for its category,
// matching by name. A category whose last place is removed is dropped from
// the map, so a toggle pair restores the exact prior state.
func (p *Pipeline) TogglePlace(ctx context.Context, sessionID, category string, place models.Place) (*models.SearchSession, error) {
	sess, err := p.Handoff.SearchData(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.SelectedPlaces == nil {
		sess.SelectedPlaces = make(map[string][]models.Place)
	}

	selected := sess.SelectedPlaces[category]
	idx := -1
	for i, sel := range selected {
		if sel.Name == place.Name {
			idx = i
			break
		}
	}
	if idx >= 0 {
		selected = append(selected[:idx], selected[idx+1:]...)
	} else {
		selected = append(selected, place)
	}

	if len(selected) == 0 {
		delete(sess.SelectedPlaces, category)
	} else {
		sess.SelectedPlaces[category] = selected
	}

	if err := p.Handoff.SetSearchData(ctx, sessionID, sess); err != nil {
		return nil, fmt.Errorf("store search session: %w", err)
	}
	return sess, nil
}

func selectionCount(selected map[string][]models.Place) int {
	n := 0
	for _, places := range selected {
		n += len(places)
	}
	return n
}

// effectivePlaces is the place list submitted to the generator: the user's
// selection when there is one, otherwise the union of every result category.
func effectivePlaces(sess *models.SearchSession) []models.Place {
	if selectionCount(sess.SelectedPlaces) > 0 {
		return planner.FlattenSelection(sess.SelectedPlaces)
	}
	return planner.FlattenSelection(sess.ResultsByCategory)
}

// GenerateItinerary calls the generator with the accumulated trip parameters
// and commits the merged ItineraryData. A malformed response or generator
// failure leaves the slot untouched.
func (p *Pipeline) GenerateItinerary(ctx context.Context, sessionID string) (*models.ItineraryData, error) {
	sess, err := p.Handoff.SearchData(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	req := models.ItineraryRequest{
		Destination: sess.Destination,
		Places:      effectivePlaces(sess),
		TripLength:  sess.TripLength,
		Budget:      sess.Budget,
		TripType:    sess.TripType,
		Party:       sess.Party,
		Interests:   sess.Interests,
	}

	itin, err := p.Generator.GenerateItinerary(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: %w", err)
	}

	selected := sess.SelectedPlaces
	if selected == nil {
		selected = make(map[string][]models.Place)
	}

	data := &models.ItineraryData{
		SearchForm:        sess.SearchForm,
		ResultsByCategory: sess.ResultsByCategory,
		SelectedPlaces:    selected,
		Itinerary:         *itin,
	}
	if err := p.Handoff.SetItineraryData(ctx, sessionID, data); err != nil {
		return nil, fmt.Errorf("store itinerary data: %w", err)
	}
	return data, nil
}

// ItineraryView is the itinerary stage payload: the hand-off data plus
// best-effort imagery. DayImages is keyed by day number, ActivityImages by
// "<day>-<activity name>".
type ItineraryView struct {
	*models.ItineraryData
	DayImages      map[int]string    `json:"dayImages"`
	ActivityImages map[string]string `json:"activityImages"`
}

// ItineraryStage loads the generated itinerary and resolves imagery for each
// day header and activity: own photo_url first, then photo_reference via the
// photo endpoint, then the destination's generic photo for day headers.
// Every resolution is independent and failures are swallowed; imagery is
// cosmetic and the caller falls back to a placeholder.
func (p *Pipeline) ItineraryStage(ctx context.Context, sessionID string) (*ItineraryView, error) {
	data, err := p.Handoff.ItineraryData(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &ItineraryView{
		ItineraryData:  data,
		DayImages:      make(map[int]string),
		ActivityImages: make(map[string]string),
	}

	for _, day := range data.Itinerary.Days {
		if len(day.Activities) > 0 {
			first := day.Activities[0]
			if first.PhotoURL != "" {
				view.DayImages[day.Day] = first.PhotoURL
			} else if first.PhotoReference != "" {
				view.DayImages[day.Day] = p.Photos.PhotoURL(first.PhotoReference, 400)
			}
		}
		if _, ok := view.DayImages[day.Day]; !ok {
			if photoURL, err := p.Photos.DestinationPhoto(ctx, data.Destination); err == nil && photoURL != "" {
				view.DayImages[day.Day] = photoURL
			}
		}

		for _, act := range day.Activities {
			key := fmt.Sprintf("%d-%s", day.Day, act.Name)
			if act.PhotoURL != "" {
				view.ActivityImages[key] = act.PhotoURL
			} else if act.PhotoReference != "" {
				view.ActivityImages[key] = p.Photos.PhotoURL(act.PhotoReference, 400)
			}
		}
	}

	return view, nil
}

// SaveTrip persists the normalized trip for the signed-in user. The identity
// check runs before anything else so an unauthenticated save never reaches
// the store, and a per-session lock rejects duplicate submissions while a
// save is in flight or just after one succeeded.
func (p *Pipeline) SaveTrip(ctx context.Context, sessionID, userID string) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}

	data, err := p.Handoff.ItineraryData(ctx, sessionID)
	if err != nil {
		return "", err
	}

	ok, err := p.Handoff.AcquireSaveLock(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("save lock: %w", err)
	}
	if !ok {
		return "", ErrSaveInFlight
	}

	// The raw search results are not part of a saved trip.
	normalized := *data
	normalized.ResultsByCategory = nil

	tripID, err := p.Trips.Create(ctx, userID, &normalized)
	if err != nil {
		// Release so the user can retry; on success the lock ages out and
		// keeps covering the immediate double-click window.
		_ = p.Handoff.ReleaseSaveLock(ctx, sessionID)
		return "", fmt.Errorf("save trip: %w", err)
	}
	return tripID, nil
}
