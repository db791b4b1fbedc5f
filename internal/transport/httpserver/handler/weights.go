package handler

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/calendar"
	"baby-tracker-go/internal/domain/weights"
	"baby-tracker-go/internal/transport/httpserver/middleware"
)

type createEntryRequest struct {
	WeightGrams int     `json:"weight_grams"`
	MeasuredAt  string  `json:"measured_at"`
	Notes       *string `json:"notes"`
}

type updateEntryRequest struct {
	WeightGrams *int    `json:"weight_grams"`
	MeasuredAt  *string `json:"measured_at"`
	Notes       *string `json:"notes"`
}

type entryResponse struct {
	ID          string    `json:"id"`
	BabyID      string    `json:"baby_id"`
	WeightGrams int       `json:"weight_grams"`
	MeasuredAt  string    `json:"measured_at"`
	Notes       *string   `json:"notes"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type entryViewResponse struct {
	entryResponse
	RecordedByName string `json:"recorded_by_name"`
	AgeDays        int    `json:"age_days"`
	DeltaGrams     *int   `json:"delta_grams"`
}

func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}
	babyID, ok := h.babyID(w, r)
	if !ok {
		return
	}

	views, err := h.Weights.ListEntries(r.Context(), user.ID, babyID)
	if err != nil {
		h.fail(w, r, "weights.list: list entries failed", err, "user_id", user.ID, "baby_id", babyID)
		return
	}

	response := make([]entryViewResponse, 0, len(views))
	for _, view := range views {
		response = append(response, entryViewResponse{
			entryResponse:  toEntryResponse(view.Entry),
			RecordedByName: view.RecordedByName,
			AgeDays:        view.AgeDays,
			DeltaGrams:     view.DeltaGrams,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.invalidJSON(w)
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}
	babyID, ok := h.babyID(w, r)
	if !ok {
		return
	}

	input := weights.CreateEntryInput{
		UserID:      user.ID,
		BabyID:      babyID,
		WeightGrams: req.WeightGrams,
		MeasuredAt:  req.MeasuredAt,
	}
	if req.Notes != nil {
		input.Notes = *req.Notes
	}

	entry, err := h.Weights.CreateEntry(r.Context(), input)
	if err != nil {
		h.fail(w, r, "weights.create: create entry failed", err, "user_id", user.ID, "baby_id", babyID)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(*entry))
}

func (h *Handlers) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req updateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.invalidJSON(w)
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}
	babyID, ok := h.babyID(w, r)
	if !ok {
		return
	}
	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}

	entry, err := h.Weights.UpdateEntry(r.Context(), weights.UpdateEntryInput{
		UserID:      user.ID,
		BabyID:      babyID,
		EntryID:     entryID,
		WeightGrams: req.WeightGrams,
		MeasuredAt:  req.MeasuredAt,
		Notes:       req.Notes,
	})
	if err != nil {
		h.fail(w, r, "weights.update: update entry failed", err, "user_id", user.ID, "baby_id", babyID, "entry_id", entryID)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(*entry))
}

func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}
	babyID, ok := h.babyID(w, r)
	if !ok {
		return
	}
	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}

	if err := h.Weights.DeleteEntry(r.Context(), user.ID, babyID, entryID); err != nil {
		h.fail(w, r, "weights.delete: delete entry failed", err, "user_id", user.ID, "baby_id", babyID, "entry_id", entryID)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func toEntryResponse(entry weights.Entry) entryResponse {
	return entryResponse{
		ID:          entry.ID,
		BabyID:      entry.BabyID,
		WeightGrams: entry.WeightGrams,
		MeasuredAt:  calendar.Format(entry.MeasuredAt),
		Notes:       entry.Notes,
		CreatedBy:   entry.CreatedBy,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}
