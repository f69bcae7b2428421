package planner

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripcraft/models"
	"tripcraft/utils"
)

// Generator is what the HTTP handler and the planning pipeline call; the
// Planner is its production implementation.
type Generator interface {
	GenerateItinerary(ctx context.Context, req models.ItineraryRequest) (*models.Itinerary, error)
}

type Handler struct {
	Gen Generator
}

func NewHandler(gen Generator) *Handler {
	return &Handler{Gen: gen}
}

type itineraryPayload struct {
	models.ItineraryRequest
	SelectedPlaces map[string][]models.Place `json:"selectedPlaces"`
}

// POST /api/itinerary
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload itineraryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Destination == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Destination is required")
		return
	}

	// Callers send either a flat place list or the selection map.
	if len(payload.Places) == 0 && len(payload.SelectedPlaces) > 0 {
		payload.Places = FlattenSelection(payload.SelectedPlaces)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	itin, err := h.Gen.GenerateItinerary(ctx, payload.ItineraryRequest)
	if err != nil {
		log.Printf("itinerary generation failed for %q: %v", payload.Destination, err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to generate itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"itinerary": itin})
}

// FlattenSelection turns a category→places map into one list, tagging each
// place with its category. Categories are walked in sorted order so the
// flattened sequence is stable.
func FlattenSelection(selected map[string][]models.Place) []models.Place {
	categories := make([]string, 0, len(selected))
	for category := range selected {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var flat []models.Place
	for _, category := range categories {
		for _, p := range selected[category] {
			p.Category = category
			flat = append(flat, p)
		}
	}
	return flat
}
