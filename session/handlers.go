package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripcraft/middleware"
	"tripcraft/models"
	"tripcraft/trips"
	"tripcraft/utils"
)

// Handler exposes the planning pipeline stages under /api/plan. The session
// id travels in the X-Session-ID header; the search stage mints one when the
// caller has none yet.
type Handler struct {
	Pipe *Pipeline
}

func NewHandler(pipe *Pipeline) *Handler {
	return &Handler{Pipe: pipe}
}

func respondPipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNoSession):
		// The navigation guard: stages entered directly send the caller
		// back to the search stage instead of rendering anything.
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{
			"error":    "no planning session",
			"redirect": "/search",
		})
	case errors.Is(err, ErrUnauthenticated):
		utils.RespondWithError(w, http.StatusUnauthorized, "Please sign in to save your trips")
	case errors.Is(err, ErrSaveInFlight):
		utils.RespondWithError(w, http.StatusConflict, "Save already in progress")
	case errors.Is(err, trips.ErrNotConfigured):
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Trip store is not configured")
	default:
		log.Printf("pipeline error: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Request failed. Please try again.")
	}
}

// POST /api/plan/search
func (h *Handler) StartSearch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var form models.SearchForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = utils.GetUUID()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	sess, err := h.Pipe.StartSearch(ctx, sessionID, form)
	if err != nil {
		respondPipelineError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"sessionId":  sessionID,
		"searchData": sess,
	})
}

// GET /api/plan/:sessionid/places
func (h *Handler) Places(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sess, err := h.Pipe.PlacesStage(ctx, ps.ByName("sessionid"))
	if err != nil {
		respondPipelineError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sess)
}

// POST /api/plan/:sessionid/places/toggle
func (h *Handler) TogglePlace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req struct {
		Category string       `json:"category"`
		Place    models.Place `json:"place"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Category == "" || req.Place.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "category and place name are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sess, err := h.Pipe.TogglePlace(ctx, ps.ByName("sessionid"), req.Category, req.Place)
	if err != nil {
		respondPipelineError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"selectedPlaces": sess.SelectedPlaces})
}

// POST /api/plan/:sessionid/itinerary
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	data, err := h.Pipe.GenerateItinerary(ctx, ps.ByName("sessionid"))
	if err != nil {
		respondPipelineError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, data)
}

// GET /api/plan/:sessionid/itinerary
func (h *Handler) Itinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	view, err := h.Pipe.ItineraryStage(ctx, ps.ByName("sessionid"))
	if err != nil {
		respondPipelineError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// POST /api/plan/:sessionid/save
func (h *Handler) Save(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tripID, err := h.Pipe.SaveTrip(ctx, ps.ByName("sessionid"), middleware.RequestingUserID(r))
	if err != nil {
		respondPipelineError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"id": tripID, "message": "Trip saved successfully"})
}
