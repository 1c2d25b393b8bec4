package dto

import (
	"errors"

	"portfolio/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// rules maps "Field.tag" (or just "tag") to the error reported for that violation.
type rules map[string]error

// check validates v and translates the first violation through r. Missing
// values win over format errors so a half-filled form reports the missing part.
func check(v any, r rules, fallback error) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fallback
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return r.lookup(fe, fallback)
		}
	}
	return r.lookup(verrs[0], fallback)
}

func (r rules) lookup(fe validator.FieldError, fallback error) error {
	if e, ok := r[fe.Field()+"."+fe.Tag()]; ok {
		return e
	}
	if e, ok := r[fe.Tag()]; ok {
		return e
	}
	return fallback
}

var errInvalidEmail = domain.Invalid("Format email tidak valid.")
