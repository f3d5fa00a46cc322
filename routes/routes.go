package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/matchcourt/academy-system/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	registrationHandler *handlers.RegistrationHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Post("/", tournamentHandler.CreateHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByIDHandler)
			r.Get("/standings", tournamentHandler.StandingsHandler)

			// Жизненный цикл турнира
			r.Post("/start", tournamentHandler.StartHandler)
			r.Post("/playoffs", tournamentHandler.GeneratePlayoffsHandler)
			r.Post("/reset", tournamentHandler.ResetHandler)

			r.Get("/matches", matchHandler.ListByTournamentHandler)

			r.Get("/registrations", registrationHandler.ListByTournamentHandler)
			r.Post("/registrations", registrationHandler.RegisterHandler)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetByIDHandler)
		r.Patch("/{matchID}/score", matchHandler.RecordScoreHandler)
	})

	router.Route("/registrations", func(r chi.Router) {
		r.Patch("/{registrationID}/status", registrationHandler.UpdateStatusHandler)
	})
}
