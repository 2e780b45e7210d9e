package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/yusufkecer/ecommerce-password-reset/internal/domain"
	"github.com/yusufkecer/ecommerce-password-reset/internal/metrics"
)

type PasswordResetter interface {
	ForgotPassword(ctx context.Context, email string) (*domain.IssuedCredential, error)
}

type PasswordResetHandler struct {
	resetter PasswordResetter
}

func NewPasswordResetHandler(resetter PasswordResetter) *PasswordResetHandler {
	return &PasswordResetHandler{resetter: resetter}
}

// ForgotPassword handles POST /forgot_password. An empty body is treated the
// same as a body without an email.
func (h *PasswordResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		metrics.RecordRequest(metrics.OutcomeValidation)
		writeError(w, http.StatusBadRequest, domain.MsgInvalidBody)
		return
	}

	issued, err := h.resetter.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		h.writeResetError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Debug().
		Str("collection", issued.Collection.String()).
		Time("expires_at", issued.ExpiresAt).
		Msg("forgot password completed")

	metrics.RecordRequest(metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, domain.StatusResponse{
		Status:  domain.StatusSuccess,
		Message: domain.MsgTempPasswordSent,
	})
}

func (h *PasswordResetHandler) writeResetError(w http.ResponseWriter, r *http.Request, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		metrics.RecordRequest(metrics.OutcomeValidation)
		writeError(w, http.StatusBadRequest, messageOf(err, domain.MsgEmailRequired))
	case domain.KindNotFound:
		metrics.RecordRequest(metrics.OutcomeNotFound)
		writeError(w, http.StatusNotFound, messageOf(err, domain.MsgEmailNotRegistered))
	default:
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("forgot password failed")
		metrics.RecordRequest(metrics.OutcomeError)
		writeError(w, http.StatusInternalServerError, domain.MsgServerError)
	}
}

func messageOf(err error, fallback string) string {
	var re *domain.ResetError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
