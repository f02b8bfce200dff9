package models

import (
	"time"
)

// LeaderboardEntry links a registration to a judged rank. Position 1 is
// first place; positions within one event are assigned by the organizer
// and no automatic re-ranking happens here.
type LeaderboardEntry struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	EventID        string    `json:"event_id" gorm:"not null;index"`
	RegistrationID string    `json:"registration_id" gorm:"not null;index"`
	Position       int       `json:"position" gorm:"not null"`
	Score          int       `json:"score" gorm:"default:0"`
	Prize          string    `json:"prize,omitempty"`
	JudgeFeedback  string    `json:"judge_feedback,omitempty" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Registration (with its user) is preloaded on leaderboard reads so a
	// display layer needs no further lookups.
	Registration *EventRegistration `json:"registration,omitempty" gorm:"foreignKey:RegistrationID;constraint:OnDelete:CASCADE"`
}

// PlatformStats is the public aggregate snapshot served by /api/stats.
type PlatformStats struct {
	TotalEvents       int64 `json:"total_events"`
	TotalParticipants int64 `json:"total_participants"`
	ActiveEvents      int64 `json:"active_events"`
	CompletedEvents   int64 `json:"completed_events"`
}
