package dto

import (
	"strings"
	"time"

	"portfolio/internal/domain"
)

type RegisterRequest struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (r *RegisterRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	return check(r, rules{
		"required":                domain.ErrMissingFields,
		"Email.email":             errInvalidEmail,
		"Password.min":            domain.Invalid("Password minimal 8 karakter."),
		"ConfirmPassword.eqfield": domain.ErrPasswordMismatch,
	}, domain.ErrMissingFields)
}

type VerifyRequest struct {
	Email            string `json:"email" validate:"required,email"`
	VerificationCode string `json:"verificationCode" validate:"required,len=6,numeric"`
}

func (r *VerifyRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	r.VerificationCode = strings.TrimSpace(r.VerificationCode)
	return check(r, rules{
		"required": domain.Invalid("Email dan kode verifikasi wajib diisi."),
	}, domain.ErrInvalidCode)
}

type ResendRequest struct {
	Email string `json:"email" validate:"required"`
}

func (r *ResendRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return check(r, rules{"required": domain.Invalid("Email wajib diisi.")}, domain.Invalid("Email wajib diisi."))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return check(r, rules{"required": domain.ErrEmptyLogin}, domain.ErrEmptyLogin)
}

// GoogleRequest carries either a Google ID token (credential) or an OAuth
// authorization code from the popup flow.
type GoogleRequest struct {
	Credential string `json:"credential"`
	Code       string `json:"code"`
}

func (r *GoogleRequest) Validate() error {
	r.Credential = strings.TrimSpace(r.Credential)
	r.Code = strings.TrimSpace(r.Code)
	if r.Credential == "" && r.Code == "" {
		return domain.ErrGoogleMissing
	}
	return nil
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is a user as sent to clients, with the session expiry in
// epoch milliseconds when a session was just issued.
type UserResponse struct {
	*domain.User
	SessionExpiresAt int64 `json:"sessionExpiresAt,omitempty"`
}

// Session is a freshly issued session token and the user it belongs to.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

func (s *Session) Response() SessionResponse {
	return SessionResponse{User: UserResponse{User: s.User, SessionExpiresAt: s.ExpiresAt.UnixMilli()}}
}

type SessionResponse struct {
	User UserResponse `json:"user"`
}

func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
