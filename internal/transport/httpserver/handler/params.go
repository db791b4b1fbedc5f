package handler

import (
	"net/http"

	"baby-tracker-go/internal/domain/membership"
	"baby-tracker-go/internal/domain/weights"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Path ids that are not UUIDs cannot exist, so they answer like missing rows.

func (h *Handlers) babyID(w http.ResponseWriter, r *http.Request) (string, bool) {
	value := chi.URLParam(r, "id")
	if _, err := uuid.Parse(value); err != nil {
		h.fail(w, r, "params: malformed baby id", membership.ErrBabyNotFound, "baby_id", value)
		return "", false
	}
	return value, true
}

func (h *Handlers) entryID(w http.ResponseWriter, r *http.Request) (string, bool) {
	value := chi.URLParam(r, "entry_id")
	if _, err := uuid.Parse(value); err != nil {
		h.fail(w, r, "params: malformed entry id", weights.ErrEntryNotFound, "entry_id", value)
		return "", false
	}
	return value, true
}
