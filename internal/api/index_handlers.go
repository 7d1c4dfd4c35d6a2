package api

import (
	"net/http"

	"github.com/vytor/emojiabc/internal/catalog"
	"github.com/vytor/emojiabc/internal/logger"
)

// handleIndex starts a new game: the session's history is wiped before the
// page is served.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	log.Debug("rendering index page")

	if err := s.GameService.ResetSession(ctx, sessionIDFromContext(ctx)); err != nil {
		handleError(w, r, err)
		return
	}

	s.render(w, r, "index.html", pageData{
		"alphabet": catalog.Alphabet,
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}

	log := logger.FromContext(r.Context())
	if s.Templates == nil {
		log.Error("no templates loaded, cannot render %s", name)
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
