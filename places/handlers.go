package places

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripcraft/utils"
)

// Handler exposes the places capability over HTTP, matching the original
// backend contract consumed by the planning stages.
type Handler struct {
	Cli *Client
}

func NewHandler(cli *Client) *Handler {
	return &Handler{Cli: cli}
}

// POST /api/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Query     string   `json:"query"`
		Interests []string `json:"interests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Query is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	results, err := h.Cli.SearchPlaces(ctx, req.Query, utils.CleanStrings(req.Interests))
	if err != nil {
		log.Printf("place search failed for %q: %v", req.Query, err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to search places")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"results": results})
}

// POST /api/autocomplete
func (h *Handler) Autocomplete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	predictions, err := h.Cli.Autocomplete(ctx, req.Query)
	if err != nil {
		log.Printf("autocomplete failed for %q: %v", req.Query, err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to fetch autocomplete suggestions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"predictions": predictions})
}

// POST /api/destination-photo
func (h *Handler) DestinationPhoto(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Destination string `json:"destination"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Destination is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	photoURL, err := h.Cli.DestinationPhoto(ctx, req.Destination)
	if err != nil {
		if errors.Is(err, ErrNoPhoto) {
			utils.RespondWithError(w, http.StatusNotFound, "No photos found for this destination")
			return
		}
		log.Printf("destination photo failed for %q: %v", req.Destination, err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to fetch destination photo")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"photo_url": photoURL})
}

// GET /api/place/photo — redirects to the image resource for a photo
// reference. The server key is always used; any key in the query is ignored.
func (h *Handler) PhotoProxy(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ref := r.URL.Query().Get("photoreference")
	if ref == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "photoreference is required")
		return
	}

	maxWidth := 400
	if mw := r.URL.Query().Get("maxwidth"); mw != "" {
		if n, err := strconv.Atoi(mw); err == nil && n > 0 {
			maxWidth = n
		}
	}

	http.Redirect(w, r, h.Cli.PhotoURL(ref, maxWidth), http.StatusFound)
}
