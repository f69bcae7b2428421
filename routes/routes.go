package routes

import (
	"github.com/julienschmidt/httprouter"

	"tripcraft/auth"
	"tripcraft/middleware"
	"tripcraft/places"
	"tripcraft/planner"
	"tripcraft/ratelim"
	"tripcraft/session"
	"tripcraft/trips"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddPlaceRoutes(router *httprouter.Router, h *places.Handler) {
	router.POST("/api/search", ratelim.RateLimit(h.Search))
	router.POST("/api/autocomplete", h.Autocomplete)
	router.POST("/api/destination-photo", h.DestinationPhoto)
	router.GET("/api/place/photo", h.PhotoProxy)
}

func AddItineraryRoutes(router *httprouter.Router, h *planner.Handler) {
	router.POST("/api/itinerary", ratelim.RateLimit(h.Generate))
}

func AddPlanRoutes(router *httprouter.Router, h *session.Handler) {
	router.POST("/api/plan/search", ratelim.RateLimit(h.StartSearch))
	router.GET("/api/plan/:sessionid/places", h.Places)
	router.POST("/api/plan/:sessionid/places/toggle", h.TogglePlace)
	router.POST("/api/plan/:sessionid/itinerary", ratelim.RateLimit(h.Generate))
	router.GET("/api/plan/:sessionid/itinerary", h.Itinerary)
	// Save resolves identity itself so signed-out users get the sign-in
	// prompt instead of a bare 401.
	router.POST("/api/plan/:sessionid/save", middleware.OptionalAuth(h.Save))
}

func AddTripRoutes(router *httprouter.Router, h *trips.Handler) {
	router.GET("/api/trips", middleware.Authenticate(h.ListTrips))
	router.GET("/api/trips/:tripid", middleware.Authenticate(h.GetTrip))
	router.DELETE("/api/trips/:tripid", middleware.Authenticate(h.DeleteTrip))
	router.GET("/api/trips/:tripid/share", middleware.Authenticate(h.ShareQR))
	router.GET("/api/trips/:tripid/print", middleware.Authenticate(h.PrintTrip))
}
