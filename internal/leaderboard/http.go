package leaderboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	httperrors "quizkit/pkg/http/errors"
)

// HTTPHandler exposes REST endpoints for the saved-score history.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a leaderboard HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "leaderboard_http").Logger(),
	}
}

// Handle routes leaderboard requests.
// Routes: GET /v1/leaderboard      -> ranked history
//         DELETE /v1/leaderboard   -> bulk clear (UI confirms beforehand)
func (h *HTTPHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodDelete:
		h.handleClear(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

func (h *HTTPHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.ReadAll(r.Context())

	resp := map[string]interface{}{
		"top":         WireEntries(entries),
		"retrievedAt": time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(w, resp)
}

func (h *HTTPHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("leaderboard clear failed")
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeClearFailed, "failed to clear leaderboard")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
