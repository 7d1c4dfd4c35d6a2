package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(s.sessionMiddleware)

		r.Get("/", s.handleIndex)
		r.Get("/get_random_letter", s.handleRandomLetter)
		r.Post("/update_time_taken", s.handleUpdateTimeTaken)
		r.Post("/update_history", s.handleUpdateHistory)
		r.Post("/report_error", s.handleReportError)
		r.Get("/get_history", s.handleGetHistory)
		r.Get("/get_statistics", s.handleGetStatistics)
		r.Post("/clear_history", s.handleClearHistory)
	})

	staticDir := s.StaticDir
	if staticDir == "" {
		staticDir = "web/static"
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	return r
}
