package handler

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/domain/identity"
	"baby-tracker-go/internal/transport/httpserver/middleware"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.invalidJSON(w)
		return
	}

	session, err := h.Identity.Signup(r.Context(), identity.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.fail(w, r, "auth.signup: signup failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.invalidJSON(w)
		return
	}

	session, err := h.Identity.Login(r.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(w, r, "auth.login: login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		unauthenticated(w)
		return
	}

	result, err := h.Identity.Me(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, "auth.me: load user failed", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*result))
}

func toUserResponse(user identity.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

func toSessionResponse(session *identity.Session) sessionResponse {
	return sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      toUserResponse(session.User),
	}
}
