package models

import (
	"time"
)

const (
	RoleAdmin       = "admin"
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

// ValidRole reports whether r is one of the supported platform roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleOrganizer || r == RoleParticipant
}

// User is created on first authentication and never hard-deleted.
// Identity comes from the gateway; this row only holds profile + role.
type User struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Email           string    `json:"email,omitempty" gorm:"index"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Role            string    `json:"role" gorm:"type:varchar(16);default:'participant'"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// CanManageEvents reports whether the user may create events at all.
func (u *User) CanManageEvents() bool {
	return u.Role == RoleAdmin || u.Role == RoleOrganizer
}
