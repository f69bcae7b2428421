package trips

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"

	"tripcraft/middleware"
	"tripcraft/models"
	"tripcraft/utils"
)

// fetchCover downloads and downscales the trip's representative photo for
// embedding into the PDF. Any failure yields nil and the PDF renders
// text-only; cover art is cosmetic.
func (h *Handler) fetchCover(ctx context.Context, trip *models.SavedTrip) []byte {
	photoURL := resolveTripPhoto(ctx, trip, h.Photos)
	if photoURL == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return nil
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil
	}
	img = imaging.Resize(img, 480, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		return nil
	}
	return buf.Bytes()
}

// BuildTripPDF renders a printable day-by-day itinerary. cover is an
// optional JPEG to place under the header.
func BuildTripPDF(trip *models.SavedTrip, cover []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, fmt.Sprintf("%s Itinerary", trip.Destination))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%d day(s) | %s | %s | %s", trip.TripLength, trip.Budget, trip.TripType, trip.Party))
	pdf.Ln(10)

	if len(cover) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "JPEG"}
		pdf.RegisterImageOptionsReader("cover", opts, bytes.NewReader(cover))
		pdf.ImageOptions("cover", 10, pdf.GetY(), 90, 0, true, opts, 0, "")
		pdf.Ln(6)
	}

	for _, day := range trip.Itinerary.Days {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, fmt.Sprintf("Day %d", day.Day))
		pdf.Ln(10)

		for _, act := range day.Activities {
			pdf.SetFont("Arial", "B", 11)
			pdf.MultiCell(0, 6, fmt.Sprintf("%s - %s", act.Time, act.Name), "", "L", false)
			pdf.SetFont("Arial", "", 10)
			if act.Description != "" {
				pdf.MultiCell(0, 5, act.Description, "", "L", false)
			}
			if act.Tips != "" {
				pdf.MultiCell(0, 5, "Tip: "+act.Tips, "", "L", false)
			}
			if act.Cost != "" {
				pdf.MultiCell(0, 5, "Cost: "+act.Cost, "", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// GET /api/trips/:tripid/print
func (h *Handler) PrintTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	trip := h.ownedTrip(ctx, w, ps.ByName("tripid"), middleware.RequestingUserID(r))
	if trip == nil {
		return
	}

	pdfBytes, err := BuildTripPDF(trip, h.fetchCover(ctx, trip))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=trip-"+trip.TripID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
