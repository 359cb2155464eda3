package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	mw "dailythought/internal/middleware"
	"dailythought/internal/models"
)

type AnalyticsProvider interface {
	Snapshot(ctx context.Context, ownerID int, today time.Time) (models.MoodAnalyticsSnapshot, error)
}

type AnalyticsHandler struct {
	svc    AnalyticsProvider
	logger *zap.Logger
}

func NewAnalyticsHandler(svc AnalyticsProvider, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, logger: logger}
}

func (h *AnalyticsHandler) Routes(r chi.Router) {
	r.Get("/mood-analytics", h.Get)
}

// Get returns the caller's mood snapshot.
// Accepts optional query param: local_date=YYYY-MM-DD to use as the user's "today".
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := mw.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in", "")
		return
	}

	var today time.Time
	if s := r.URL.Query().Get("local_date"); s != "" {
		d, err := time.Parse(models.DateLayout, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid local_date format; expected YYYY-MM-DD", "local_date")
			return
		}
		today = d
	}

	snap, err := h.svc.Snapshot(r.Context(), userID, today)
	if err != nil {
		writeServiceError(w, h.logger, "fetch analytics", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
