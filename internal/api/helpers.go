package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vytor/emojiabc/internal/logger"
)

// maxBodyBytes bounds the JSON bodies the game endpoints accept.
const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeBody reads the request's JSON body into a T. A missing or malformed
// body yields the zero T; the game endpoints never reject input.
func decodeBody[T any](r *http.Request) T {
	var v T
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(body) == 0 {
		return v
	}
	if err := json.Unmarshal(body, &v); err != nil {
		logger.FromContext(r.Context()).Debug("ignoring malformed body: %v", err)
		var zero T
		return zero
	}
	return v
}
