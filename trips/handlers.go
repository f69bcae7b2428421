package trips

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripcraft/middleware"
	"tripcraft/models"
	"tripcraft/utils"
)

// TripStore is the document-store contract for saved trips.
type TripStore interface {
	Create(ctx context.Context, ownerID string, data *models.ItineraryData) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.SavedTrip, error)
	GetByID(ctx context.Context, tripID string) (*models.SavedTrip, error)
	Delete(ctx context.Context, tripID string) error
}

type Handler struct {
	Store  TripStore
	Photos PhotoSource
}

func NewHandler(store TripStore, photos PhotoSource) *Handler {
	return &Handler{Store: store, Photos: photos}
}

func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotConfigured):
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Trip store is not configured")
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
	default:
		log.Printf("trip store error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Trip store request failed")
	}
}

// ownedTrip loads a trip and hides other users' trips behind a not-found.
func (h *Handler) ownedTrip(ctx context.Context, w http.ResponseWriter, tripID, userID string) *models.SavedTrip {
	trip, err := h.Store.GetByID(ctx, tripID)
	if err != nil {
		respondStoreError(w, err)
		return nil
	}
	if trip.UserID != userID {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return nil
	}
	return trip
}

// GET /api/trips
func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestingUserID(r)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	trips, err := h.Store.ListByOwner(ctx, userID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	photos := make(map[string]string, len(trips))
	for i := range trips {
		if u := resolveTripPhoto(ctx, &trips[i], h.Photos); u != "" {
			photos[trips[i].TripID] = u
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"trips": trips, "photos": photos})
}

// GET /api/trips/:tripid
func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip := h.ownedTrip(ctx, w, ps.ByName("tripid"), middleware.RequestingUserID(r))
	if trip == nil {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, trip)
}

// DELETE /api/trips/:tripid
func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip := h.ownedTrip(ctx, w, ps.ByName("tripid"), middleware.RequestingUserID(r))
	if trip == nil {
		return
	}

	if err := h.Store.Delete(ctx, trip.TripID); err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Trip deleted successfully"})
}
