package domain

import "github.com/google/uuid"

type UserID = uuid.UUID
type HistoryID = uuid.UUID
type ProjectID = uuid.UUID
type CertificateID = uuid.UUID

// Role is stored as plain text; the zero value is never persisted.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role passes the admin gate.
func (r Role) IsStaff() bool { return r == RoleAdmin || r == RoleSuperAdmin }

// SingletonKey is the fixed key of the site-data and skills documents.
const SingletonKey = "main"

// MediaRef is a stored media object: its public URL and the handle used to delete it.
type MediaRef struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

func (m MediaRef) Empty() bool { return m.URL == "" && m.ID == "" }
