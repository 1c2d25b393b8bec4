package dto

import (
	"strings"

	"portfolio/internal/domain"
)

// UpdateProfileRequest is a partial update; nil fields are left untouched.
type UpdateProfileRequest struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Gender      *string `json:"gender"`
	Address     *string `json:"address"`
	OldPassword string  `json:"oldPassword"`
	Password    string  `json:"password"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.FullName != nil && strings.TrimSpace(*r.FullName) == "" {
		return domain.Invalid("Nama lengkap tidak boleh kosong.")
	}
	if r.Email != nil {
		e := NormalizeEmail(*r.Email)
		r.Email = &e
		if err := validate.Var(e, "required,email"); err != nil {
			return errInvalidEmail
		}
	}
	if r.Gender != nil {
		switch *r.Gender {
		case "", domain.GenderMale, domain.GenderFemale:
		default:
			return domain.Invalid("Jenis kelamin tidak valid.")
		}
	}
	if r.Password != "" {
		if r.OldPassword == "" {
			return domain.Invalid("Kata Sandi Lama wajib diisi untuk mengganti password.")
		}
		if len(r.Password) < 8 {
			return domain.Invalid("Password minimal 8 karakter.")
		}
	}
	return nil
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type CreateAdminRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

func (r *CreateAdminRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = NormalizeEmail(r.Email)
	return check(r, rules{
		"required":    domain.Invalid("Nama lengkap, email, dan password wajib diisi."),
		"Email.email": errInvalidEmail,
	}, domain.ErrMissingFields)
}

type UpdateAdminRequest struct {
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type StatsResponse struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalAdmins      int64 `json:"totalAdmins"`
	TotalSuperAdmins int64 `json:"totalSuperAdmins"`
	Total            int64 `json:"total"`
}

type ManagementUsersResponse struct {
	SuperAdmins []domain.User `json:"superAdmins"`
	Admins      []domain.User `json:"admins"`
}
