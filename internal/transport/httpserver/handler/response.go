package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"baby-tracker-go/internal/domain/apperr"
	"baby-tracker-go/pkg/logger"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindInvalidInput, apperr.KindInvalidOperation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as the error envelope. Tagged domain errors are logged as
// business errors, everything else as internal errors with a generic message.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error, args ...any) {
	log := logger.FromContext(r.Context(), h.log)
	kind := apperr.KindOf(err)

	if kind != apperr.KindInternal {
		log.BusinessError(op, err, args...)
	} else {
		log.InternalError(op, err, args...)
	}

	writeError(w, statusFor(kind), string(kind), apperr.MessageOf(err))
}

func (h *Handlers) invalidJSON(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, string(apperr.KindInvalidInput), "invalid json body")
}

func unauthenticated(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, string(apperr.KindUnauthenticated), "Authentication required")
}
