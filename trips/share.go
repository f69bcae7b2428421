package trips

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"tripcraft/middleware"
	"tripcraft/models"
	"tripcraft/utils"
)

// ShareURL is the public link a shared trip points at.
func ShareURL(trip *models.SavedTrip) string {
	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return fmt.Sprintf("%s/trips/%s", base, trip.TripID)
}

// GET /api/trips/:tripid/share — a QR code PNG encoding the share link, for
// clients without a native share capability.
func (h *Handler) ShareQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trip := h.ownedTrip(ctx, w, ps.ByName("tripid"), middleware.RequestingUserID(r))
	if trip == nil {
		return
	}

	png, err := qrcode.Encode(ShareURL(trip), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
