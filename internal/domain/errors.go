package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Transport maps them to HTTP status codes.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream failure")
)

// Error carries a client-facing message next to its kind. Cause, when set,
// is the infrastructure error behind it and is never shown to clients.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func Invalid(msg string) error         { return &Error{Kind: ErrValidation, Message: msg} }
func Unauthenticated(msg string) error { return &Error{Kind: ErrUnauthenticated, Message: msg} }
func Forbidden(msg string) error       { return &Error{Kind: ErrForbidden, Message: msg} }
func NotFound(msg string) error        { return &Error{Kind: ErrNotFound, Message: msg} }

// Duplicate reports a unique-constraint hit on field.
func Duplicate(field string) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf("Nilai untuk %s sudah ada. Mohon gunakan nilai lain.", field)}
}

// Upstream wraps an infrastructure failure behind a client-safe message.
func Upstream(msg string, cause error) error {
	return &Error{Kind: ErrUpstream, Message: msg, Cause: cause}
}

// Session and credential errors referenced by callers and tests.
var (
	ErrNoToken          = &Error{Kind: ErrUnauthenticated, Message: "Tidak terotentikasi, tidak ada token."}
	ErrSessionExpired   = &Error{Kind: ErrUnauthenticated, Message: "Sesi telah berakhir. Silakan login kembali."}
	ErrInvalidToken     = &Error{Kind: ErrUnauthenticated, Message: "Token tidak valid atau rusak."}
	ErrSessionReplaced  = &Error{Kind: ErrUnauthenticated, Message: "Tidak terotentikasi, sesi tidak valid."}
	ErrAdminOnly        = &Error{Kind: ErrUnauthorized, Message: "Tidak diizinkan, khusus Admin."}
	ErrSuperAdminOnly   = &Error{Kind: ErrUnauthorized, Message: "Tidak diizinkan, khusus Super Admin."}
	ErrEmptyLogin       = &Error{Kind: ErrValidation, Message: "Email/Password tidak boleh kosong"}
	ErrBadCredentials   = &Error{Kind: ErrUnauthenticated, Message: "Email atau Password tidak sesuai"}
	ErrNotVerified      = &Error{Kind: ErrForbidden, Message: "Akun Anda belum diverifikasi. Silakan lakukan Verifikasi terlebih dahulu."}
	ErrMissingFields    = &Error{Kind: ErrValidation, Message: "Semua kolom wajib diisi."}
	ErrPasswordMismatch = &Error{Kind: ErrValidation, Message: "Password dan Konfirmasi Password tidak cocok."}
	ErrEmailRegistered  = &Error{Kind: ErrValidation, Message: "Email sudah terdaftar. Silakan Login."}
	ErrEmailPending     = &Error{Kind: ErrValidation, Message: "Email ini sudah didaftarkan tapi belum diverifikasi. Silakan Verifikasi terlebih dahulu."}
	ErrInvalidCode      = &Error{Kind: ErrValidation, Message: "Kode verifikasi tidak valid atau sudah kedaluwarsa."}
	ErrAlreadyVerified  = &Error{Kind: ErrValidation, Message: "Akun ini sudah aktif. Silakan langsung login."}
	ErrEmailUnknown     = &Error{Kind: ErrNotFound, Message: "Email yang Anda masukkan tidak terdaftar."}
	ErrGoogleMissing    = &Error{Kind: ErrValidation, Message: "Kredensial Google atau Authorization Code tidak ada."}
	ErrGoogleInvalid    = &Error{Kind: ErrValidation, Message: "Kredensial Google tidak valid atau sudah kedaluwarsa."}
	ErrWrongOldPassword = &Error{Kind: ErrUnauthenticated, Message: "Kata Sandi Lama yang Anda masukkan salah."}
	ErrWrongPassword    = &Error{Kind: ErrUnauthenticated, Message: "Password yang Anda masukkan salah."}
	ErrUserNotFound     = &Error{Kind: ErrNotFound, Message: "User tidak ditemukan."}
)

// Upload errors.
var (
	ErrFileTooLarge        = &Error{Kind: ErrValidation, Message: "Ukuran file terlalu besar, pastikan Maks. 6MB!"}
	ErrProfilePhotoTooBig  = &Error{Kind: ErrValidation, Message: "Ukuran foto profil tidak boleh melebihi 4MB."}
	ErrUnsupportedFileType = &Error{Kind: ErrValidation, Message: "Tipe file tidak didukung! Hanya gambar atau PDF yang diizinkan."}
)

// MessageOf returns the client-facing message of err, or "" for unknown errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
