package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "campusevents/docs"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Public
	mux.HandleFunc("GET /events", eventController.ListUpcoming)
	mux.HandleFunc("GET /events/{eventID}", eventController.Get)
	mux.HandleFunc("POST /events/{eventID}/registrations", registrationController.Register)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Admin (token verified on every request)
	mux.HandleFunc("POST /admin/events", requireAuth(eventController.Create))
	mux.HandleFunc("PATCH /admin/events/{eventID}", requireAuth(eventController.Update))
	mux.HandleFunc("DELETE /admin/events/{eventID}", requireAuth(eventController.Delete))
	mux.HandleFunc("GET /admin/events/{eventID}/registrations", requireAuth(registrationController.ListRoster))
	mux.HandleFunc("GET /admin/events/{eventID}/registrations/export", requireAuth(registrationController.ExportCSV))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
