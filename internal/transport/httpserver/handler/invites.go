package handler

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/calendar"
	"baby-tracker-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type inviteResponse struct {
	Token     string    `json:"token"`
	InviteURL string    `json:"invite_url"`
	QRDataURL string    `json:"qr_data_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type invitePreviewResponse struct {
	BabyName  string    `json:"baby_name"`
	BirthDate string    `json:"birth_date"`
	InvitedBy string    `json:"invited_by"`
	ExpiresAt time.Time `json:"expires_at"`
}

type acceptInviteResponse struct {
	Success  bool   `json:"success"`
	BabyID   string `json:"baby_id"`
	BabyName string `json:"baby_name"`
}

func (h *Handlers) CreateInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}
	babyID, ok := h.babyID(w, r)
	if !ok {
		return
	}

	invite, err := h.Invites.Issue(r.Context(), user.ID, babyID)
	if err != nil {
		h.fail(w, r, "invites.create: issue invite failed", err, "user_id", user.ID, "baby_id", babyID)
		return
	}

	link, err := h.Links.Build(invite.Token)
	if err != nil {
		h.fail(w, r, "invites.create: render invite link failed", err, "baby_id", babyID)
		return
	}

	writeJSON(w, http.StatusCreated, inviteResponse{
		Token:     invite.Token,
		InviteURL: link.URL,
		QRDataURL: link.QRDataURL,
		ExpiresAt: invite.ExpiresAt,
	})
}

func (h *Handlers) GetInvite(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	preview, err := h.Invites.Inspect(r.Context(), token)
	if err != nil {
		h.fail(w, r, "invites.get: inspect invite failed", err)
		return
	}

	writeJSON(w, http.StatusOK, invitePreviewResponse{
		BabyName:  preview.BabyName,
		BirthDate: calendar.Format(preview.BabyBirthDate),
		InvitedBy: preview.InviterName,
		ExpiresAt: preview.ExpiresAt,
	})
}

func (h *Handlers) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}
	token := chi.URLParam(r, "token")

	acceptance, err := h.Invites.Accept(r.Context(), token, user.ID)
	if err != nil {
		h.fail(w, r, "invites.accept: accept invite failed", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, acceptInviteResponse{
		Success:  true,
		BabyID:   acceptance.BabyID,
		BabyName: acceptance.BabyName,
	})
}
