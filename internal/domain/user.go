package domain

import "time"

const (
	GenderMale   = "Laki-laki"
	GenderFemale = "Perempuan"
)

type User struct {
	ID                  UserID     `gorm:"type:uuid;primaryKey" json:"_id"`
	FullName            string     `gorm:"type:text;not null" json:"fullName"`
	Email               string     `gorm:"type:text;not null;uniqueIndex:ux_users_email" json:"email"`
	Phone               string     `gorm:"type:text" json:"phone"`
	Gender              string     `gorm:"type:text" json:"gender"`
	Address             string     `gorm:"type:text" json:"address"`
	PasswordHash        string     `gorm:"type:text;not null" json:"-"`
	Role                Role       `gorm:"type:text;not null;default:user;index" json:"role"`
	IsVerified          bool       `gorm:"not null;default:false" json:"isVerified"`
	VerificationCode    *string    `gorm:"type:text" json:"-"`
	VerificationExpires *time.Time `json:"-"`
	SessionID           *string    `gorm:"type:text" json:"-"`
	ProfilePicture      string     `gorm:"type:text" json:"profilePicture"`
	ProfilePictureID    string     `gorm:"type:text" json:"-"`
	CreatedAt           time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt           time.Time  `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Photo returns the stored profile picture reference.
func (u *User) Photo() MediaRef {
	return MediaRef{URL: u.ProfilePicture, ID: u.ProfilePictureID}
}

func (u *User) SetPhoto(ref MediaRef) {
	u.ProfilePicture = ref.URL
	u.ProfilePictureID = ref.ID
}

// HasSession reports whether sid is the user's current session id.
func (u *User) HasSession(sid string) bool {
	return u.SessionID != nil && sid != "" && *u.SessionID == sid
}
