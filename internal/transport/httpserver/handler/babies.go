package handler

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/calendar"
	"baby-tracker-go/internal/domain/membership"
	"baby-tracker-go/internal/transport/httpserver/middleware"
)

type createBabyRequest struct {
	Name      string  `json:"name"`
	BirthDate string  `json:"birth_date"`
	Gender    *string `json:"gender"`
}

type updateBabyRequest struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birth_date"`
	Gender    *string `json:"gender"`
}

type babyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birth_date"`
	Gender    *string   `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type babySummaryResponse struct {
	babyResponse
	Role             string  `json:"role"`
	ParentCount      int64   `json:"parent_count"`
	LatestWeight     *int    `json:"latest_weight"`
	LatestWeightDate *string `json:"latest_weight_date"`
}

type memberResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type babyDetailResponse struct {
	babyResponse
	Role    string           `json:"role"`
	Parents []memberResponse `json:"parents"`
}

func (h *Handlers) ListBabies(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}

	summaries, err := h.Babies.ListBabies(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, "babies.list: list babies failed", err, "user_id", user.ID)
		return
	}

	response := make([]babySummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		item := babySummaryResponse{
			babyResponse: toBabyResponse(summary.Baby),
			Role:         string(summary.Role),
			ParentCount:  summary.ParentCount,
			LatestWeight: summary.LatestWeightGrams,
		}
		if summary.LatestWeightDate != nil {
			date := calendar.Format(*summary.LatestWeightDate)
			item.LatestWeightDate = &date
		}
		response = append(response, item)
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateBaby(w http.ResponseWriter, r *http.Request) {
	var req createBabyRequest
	if err := decodeJSON(r, &req); err != nil {
		h.invalidJSON(w)
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}

	input := membership.CreateBabyInput{Name: req.Name, BirthDate: req.BirthDate}
	if req.Gender != nil {
		input.Gender = *req.Gender
	}

	baby, err := h.Babies.CreateBaby(r.Context(), user.ID, input)
	if err != nil {
		h.fail(w, r, "babies.create: create baby failed", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toBabyResponse(*baby))
}

func (h *Handlers) GetBaby(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}
	babyID, ok := h.babyID(w, r)
	if !ok {
		return
	}

	detail, err := h.Babies.GetBaby(r.Context(), user.ID, babyID)
	if err != nil {
		h.fail(w, r, "babies.get: get baby failed", err, "user_id", user.ID, "baby_id", babyID)
		return
	}

	parents := make([]memberResponse, 0, len(detail.Members))
	for _, member := range detail.Members {
		parents = append(parents, memberResponse{
			ID:       member.UserID,
			Name:     member.Name,
			Email:    member.Email,
			Role:     string(member.Role),
			JoinedAt: member.JoinedAt,
		})
	}

	writeJSON(w, http.StatusOK, babyDetailResponse{
		babyResponse: toBabyResponse(detail.Baby),
		Role:         string(detail.Role),
		Parents:      parents,
	})
}

func (h *Handlers) UpdateBaby(w http.ResponseWriter, r *http.Request) {
	var req updateBabyRequest
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

	baby, err := h.Babies.UpdateBaby(r.Context(), user.ID, babyID, membership.UpdateBabyInput{
		Name:      req.Name,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	})
	if err != nil {
		h.fail(w, r, "babies.update: update baby failed", err, "user_id", user.ID, "baby_id", babyID)
		return
	}

	writeJSON(w, http.StatusOK, toBabyResponse(*baby))
}

func (h *Handlers) DeleteBaby(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}
	babyID, ok := h.babyID(w, r)
	if !ok {
		return
	}

	if err := h.Babies.DeleteBaby(r.Context(), user.ID, babyID); err != nil {
		h.fail(w, r, "babies.delete: delete baby failed", err, "user_id", user.ID, "baby_id", babyID)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handlers) LeaveBaby(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}
	babyID, ok := h.babyID(w, r)
	if !ok {
		return
	}

	if err := h.Babies.Leave(r.Context(), user.ID, babyID); err != nil {
		h.fail(w, r, "babies.leave: leave baby failed", err, "user_id", user.ID, "baby_id", babyID)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func toBabyResponse(baby membership.Baby) babyResponse {
	return babyResponse{
		ID:        baby.ID,
		Name:      baby.Name,
		BirthDate: calendar.Format(baby.BirthDate),
		Gender:    baby.Gender,
		CreatedAt: baby.CreatedAt,
		UpdatedAt: baby.UpdatedAt,
	}
}
