package domain

import "time"

const (
	StatusSuccess = "success"
	StatusError   = "error"

	MsgEmailRequired      = "Email is required"
	MsgInvalidBody        = "Invalid request body"
	MsgEmailNotRegistered = "This email is not registered."
	MsgTempPasswordSent   = "Temporary password sent to your email."
	MsgServerError        = "Server error"
)

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// IssuedCredential describes a temporary password that was persisted and
// mailed. Plaintext only lives in memory for the duration of the request.
type IssuedCredential struct {
	Collection Collection
	Email      string
	Plaintext  string
	Hash       string
	ExpiresAt  time.Time
}
