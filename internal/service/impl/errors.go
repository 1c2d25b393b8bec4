package impl

import "errors"

var (
	ErrEmptyPassword = errors.New("empty password")
	ErrInvalidHash   = errors.New("malformed password hash")
)

const msgRoleInvalid = "Role tidak valid. Hanya boleh 'admin' atau 'user'."
