package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authsvc "chequetrack/internal/auth"
	"chequetrack/internal/http/auth"
	"chequetrack/internal/http/cheque"
	"chequetrack/internal/http/export"
	"chequetrack/internal/http/followup"
	"chequetrack/internal/http/importcsv"
	"chequetrack/internal/http/party"
	"chequetrack/internal/http/stats"
)

func New(
	authService *authsvc.Service,
	authV1 *auth.Handler,
	chequesV1 *cheque.Handler,
	followUpsV1 *followup.Handler,
	statsV1 *stats.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	partiesV1 *party.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		// Everything below requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authService))

			r.Route("/cheques", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				chequesV1.Routes(r)
			})

			r.Route("/follow-ups", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				followUpsV1.Routes(r)
			})

			r.Route("/stats", statsV1.Routes)

			r.Route("/import", importV1.Routes)

			r.Route("/export", exportV1.Routes)

			r.Route("/parties", func(r chi.Router) {
				partiesV1.Routes(r)
			})
		})
	})

	return router
}
