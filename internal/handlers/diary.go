package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	mw "dailythought/internal/middleware"
	"dailythought/internal/models"
)

type DiaryService interface {
	List(ctx context.Context, ownerID int) ([]models.DiaryEntry, error)
	Get(ctx context.Context, ownerID int, id string) (models.DiaryEntry, error)
	Create(ctx context.Context, ownerID int, in models.NewEntry) (models.DiaryEntry, error)
	Update(ctx context.Context, ownerID int, id string, c models.EntryChanges) (models.DiaryEntry, error)
	Delete(ctx context.Context, ownerID int, id string) error
}

type DiaryHandler struct {
	svc    DiaryService
	logger *zap.Logger
}

func NewDiaryHandler(svc DiaryService, logger *zap.Logger) *DiaryHandler {
	return &DiaryHandler{svc: svc, logger: logger}
}

// Routes mounts the diary endpoints; the caller applies authentication.
func (h *DiaryHandler) Routes(r chi.Router) {
	r.Get("/diaries", h.List)
	r.Post("/diaries", h.Create)
	r.Get("/diaries/{id}", h.Get)
	r.Put("/diaries/{id}", h.Update)
	r.Delete("/diaries/{id}", h.Delete)
}

func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := mw.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in", "")
		return
	}
	entries, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, "fetch diaries", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *DiaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := mw.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in", "")
		return
	}
	e, err := h.svc.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, "fetch diary", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *DiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := mw.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in", "")
		return
	}
	var in models.NewEntry
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body", "")
		return
	}
	e, err := h.svc.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, h.logger, "save diary", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *DiaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := mw.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in", "")
		return
	}
	var c models.EntryChanges
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body", "")
		return
	}
	e, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "id"), c)
	if err != nil {
		writeServiceError(w, h.logger, "save diary", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *DiaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := mw.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in", "")
		return
	}
	if err := h.svc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, "delete diary", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
