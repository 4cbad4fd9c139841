package routes

import (
	"github.com/arenaops/esports-platform/handlers"
	"github.com/arenaops/esports-platform/middleware"
	"github.com/arenaops/esports-platform/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes wires every handler onto the router. Read endpoints are public;
// writes require authentication and, where noted, the organizer role.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	participantHandler *handlers.ParticipantHandler,
	bracketHandler *handlers.BracketHandler,
	scheduleHandler *handlers.ScheduleHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	organizerOnly := middleware.Authorize(models.RoleOrganizer)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/schedule", scheduleHandler.GetHandler)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/full", bracketHandler.GetBundleHandler)
		r.Get("/{tournamentID}/bracket", bracketHandler.GetHandler)
		r.Get("/{tournamentID}/participants", participantHandler.ListHandler)

		// Any authenticated user may register themselves as a participant.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/{tournamentID}/participants", participantHandler.RegisterHandler)
		})

		// Organizer-only management surface.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(organizerOnly)

			r.Post("/", tournamentHandler.CreateHandler)
			r.Put("/{tournamentID}", tournamentHandler.UpdateDetailsHandler)
			r.Patch("/{tournamentID}/status", tournamentHandler.UpdateStatusHandler)
			r.Post("/{tournamentID}/logo", tournamentHandler.UploadLogoHandler)

			r.Post("/{tournamentID}/bracket", bracketHandler.GenerateHandler)
			r.Post("/{tournamentID}/matches/{matchID}/result", bracketHandler.RecordResultHandler)
			r.Put("/{tournamentID}/matches/{matchID}/schedule", bracketHandler.ScheduleMatchHandler)
		})
	})

	router.Route("/participants", func(r chi.Router) {
		r.Use(authenticate)
		r.Patch("/{participantID}/confirm", participantHandler.ConfirmHandler)
		r.Delete("/{participantID}", participantHandler.WithdrawHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.SubscribeTournament)
}
