package api

import (
	"net/http"

	"github.com/vytor/emojiabc/internal/logger"
	"github.com/vytor/emojiabc/internal/models"
)

var statusSuccess = models.StatusResponse{Status: "success"}

func (s *Server) handleRandomLetter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := s.GameService.NextLetter(ctx, sessionIDFromContext(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleUpdateTimeTaken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := decodeBody[models.TimeTakenUpdate](r)
	update := models.TimeTakenUpdate{Letter: req.Letter, TimeTaken: req.TimeTaken}

	if err := s.GameService.UpdateTimeTaken(ctx, sessionIDFromContext(ctx), update); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, statusSuccess)
}

func (s *Server) handleUpdateHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := decodeBody[models.TimeTakenUpdate](r)

	if err := s.GameService.UpdateHistory(ctx, sessionIDFromContext(ctx), req); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, statusSuccess)
}

func (s *Server) handleReportError(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := decodeBody[models.ErrorReport](r)
	if req.Letter == "" {
		logger.FromContext(ctx).Warn("error report without a letter")
	}

	if err := s.GameService.ReportError(ctx, sessionIDFromContext(ctx), req.Letter); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, statusSuccess)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records, err := s.GameService.GetHistory(ctx, sessionIDFromContext(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if records == nil {
		records = []models.HistoryRecord{}
	}
	writeJSON(w, r, http.StatusOK, records)
}

func (s *Server) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := s.GameService.GetStatistics(ctx, sessionIDFromContext(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, st)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.GameService.ClearHistory(ctx, sessionIDFromContext(ctx)); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, statusSuccess)
}
