package models

import (
	"time"
)

const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusConfirmed = "confirmed"
	// RegistrationStatusCancelled exists in the enum for compatibility with
	// historical rows; cancellation deletes the row instead of setting it.
	RegistrationStatusCancelled = "cancelled"
)

// EventRegistration enrolls a user (optionally with a team) in an event.
// The composite unique index is the authoritative guard against duplicate
// registrations; the workflow's pre-check is a fast path only.
type EventRegistration struct {
	ID                    string         `json:"id" gorm:"primaryKey"`
	EventID               string         `json:"event_id" gorm:"not null;index;uniqueIndex:idx_registrations_event_user"`
	UserID                string         `json:"user_id" gorm:"not null;index;uniqueIndex:idx_registrations_event_user"`
	TeamName              string         `json:"team_name,omitempty"`
	TeamMembers           TeamMemberList `json:"team_members" gorm:"type:jsonb"`
	Status                string         `json:"status" gorm:"type:varchar(16);default:'confirmed'"`
	RegisteredAt          time.Time      `json:"registered_at" gorm:"autoCreateTime"`
	SubmissionURL         string         `json:"submission_url,omitempty"`
	SubmissionDescription string         `json:"submission_description,omitempty" gorm:"type:text"`
	SubmittedAt           *time.Time     `json:"submitted_at,omitempty"`

	// Relationships
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
}
