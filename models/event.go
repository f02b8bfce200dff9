package models

import (
	"time"
)

const (
	EventStatusDraft     = "draft"
	EventStatusUpcoming  = "upcoming"
	EventStatusLive      = "live"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// ValidEventStatus reports whether s is a known event status.
func ValidEventStatus(s string) bool {
	switch s {
	case EventStatusDraft, EventStatusUpcoming, EventStatusLive,
		EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// ValidDifficulty reports whether d is a known difficulty level.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Event is a hackathon instance. CurrentParticipants is a denormalized
// counter: it must always equal the number of registration rows for the
// event, and is only ever mutated with relative updates inside the same
// transaction as the registration write.
type Event struct {
	ID                   string       `json:"id" gorm:"primaryKey"`
	Title                string       `json:"title" gorm:"type:varchar(255);not null"`
	Description          string       `json:"description" gorm:"type:text;not null"`
	ShortDescription     string       `json:"short_description,omitempty" gorm:"type:text"`
	Slug                 string       `json:"slug" gorm:"index"`
	OrganizerID          string       `json:"organizer_id" gorm:"not null;index"`
	Status               string       `json:"status" gorm:"type:varchar(16);default:'draft';index"`
	StartDate            time.Time    `json:"start_date" gorm:"not null"`
	EndDate              time.Time    `json:"end_date" gorm:"not null"`
	RegistrationDeadline time.Time    `json:"registration_deadline" gorm:"not null"`
	MaxParticipants      *int         `json:"max_participants,omitempty"`
	CurrentParticipants  int          `json:"current_participants" gorm:"default:0"`
	PrizePool            string       `json:"prize_pool,omitempty"`
	Category             string       `json:"category,omitempty" gorm:"index"`
	Difficulty           string       `json:"difficulty,omitempty" gorm:"type:varchar(16)"`
	Requirements         string       `json:"requirements,omitempty" gorm:"type:text"`
	Rules                string       `json:"rules,omitempty" gorm:"type:text"`
	JudgesCriteria       string       `json:"judges_criteria,omitempty" gorm:"type:text"`
	Resources            ResourceList `json:"resources" gorm:"type:jsonb"`
	Tags                 StringList   `json:"tags" gorm:"type:jsonb"`
	BannerImageURL       string       `json:"banner_image_url,omitempty"`
	IsPublic             bool         `json:"is_public" gorm:"default:true"`
	AllowTeams           bool         `json:"allow_teams" gorm:"default:true"`
	MaxTeamSize          int          `json:"max_team_size" gorm:"default:4"`
	CreatedAt            time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time    `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Organizer     *User               `json:"organizer,omitempty" gorm:"foreignKey:OrganizerID"`
	Registrations []EventRegistration `json:"registrations,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Leaderboard   []LeaderboardEntry  `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}
