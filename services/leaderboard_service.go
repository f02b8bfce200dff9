package services

import (
	"errors"

	"hackhub-backend/apperr"
	"hackhub-backend/middleware"
	"hackhub-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// getEventLeaderboard returns the ranked entries for one event, each with
// its registration and that registration's user, ascending by position.
// An event with no judged entries yields an empty slice, not an error.
func (s *LeaderboardService) getEventLeaderboard(eventID string) ([]models.LeaderboardEntry, error) {
	entries := []models.LeaderboardEntry{}
	err := s.DB.Preload("Registration.User").
		Where("event_id = ?", eventID).
		Order("position ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEventLeaderboard handles GET /api/events/:id/leaderboard. Public.
func (s *LeaderboardService) GetEventLeaderboard(c *fiber.Ctx) error {
	entries, err := s.getEventLeaderboard(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(entries)
}

// CreateEntry handles POST /api/events/:id/leaderboard. Event owner or
// admin. Positions are assigned by the caller; no re-ranking happens here.
func (s *LeaderboardService) CreateEntry(c *fiber.Ctx) error {
	type Req struct {
		RegistrationID string `json:"registration_id"`
		Position       int    `json:"position"`
		Score          int    `json:"score"`
		Prize          string `json:"prize"`
		JudgeFeedback  string `json:"judge_feedback"`
	}
	caller, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	eventID := c.Params("id")
	var event models.Event
	if err := s.DB.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondErr(c, apperr.ErrNotFound)
		}
		return respondErr(c, err)
	}
	if err := middleware.Authorize(caller, middleware.CapOwnerOrAdmin, event.OrganizerID); err != nil {
		return respondErr(c, err)
	}

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, &apperr.ValidationError{Fields: map[string]string{"body": "invalid JSON"}})
	}
	violations := map[string]string{}
	if req.RegistrationID == "" {
		violations["registration_id"] = "is required"
	}
	if req.Position < 1 {
		violations["position"] = "must be at least 1"
	}
	if err := apperr.NewValidation(violations); err != nil {
		return respondErr(c, err)
	}

	// The registration must belong to the event being judged.
	var reg models.EventRegistration
	if err := s.DB.First(&reg, "id = ? AND event_id = ?", req.RegistrationID, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondErr(c, &apperr.ValidationError{Fields: map[string]string{
				"registration_id": "no such registration for this event",
			}})
		}
		return respondErr(c, err)
	}

	entry := models.LeaderboardEntry{
		ID:             uuid.NewString(),
		EventID:        eventID,
		RegistrationID: req.RegistrationID,
		Position:       req.Position,
		Score:          req.Score,
		Prize:          req.Prize,
		JudgeFeedback:  req.JudgeFeedback,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(entry)
}

// UpdateEntry handles PATCH /api/leaderboard/:id. Event owner or admin.
func (s *LeaderboardService) UpdateEntry(c *fiber.Ctx) error {
	type Req struct {
		Position      *int    `json:"position"`
		Score         *int    `json:"score"`
		Prize         *string `json:"prize"`
		JudgeFeedback *string `json:"judge_feedback"`
	}
	caller, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	var entry models.LeaderboardEntry
	if err := s.DB.First(&entry, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondErr(c, apperr.ErrNotFound)
		}
		return respondErr(c, err)
	}
	var event models.Event
	if err := s.DB.First(&event, "id = ?", entry.EventID).Error; err != nil {
		return respondErr(c, err)
	}
	if err := middleware.Authorize(caller, middleware.CapOwnerOrAdmin, event.OrganizerID); err != nil {
		return respondErr(c, err)
	}

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, &apperr.ValidationError{Fields: map[string]string{"body": "invalid JSON"}})
	}
	updates := map[string]interface{}{}
	if req.Position != nil {
		if *req.Position < 1 {
			return respondErr(c, &apperr.ValidationError{Fields: map[string]string{"position": "must be at least 1"}})
		}
		updates["position"] = *req.Position
	}
	if req.Score != nil {
		updates["score"] = *req.Score
	}
	if req.Prize != nil {
		updates["prize"] = *req.Prize
	}
	if req.JudgeFeedback != nil {
		updates["judge_feedback"] = *req.JudgeFeedback
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&entry).Updates(updates).Error; err != nil {
			return respondErr(c, err)
		}
	}
	return c.JSON(entry)
}
