package services

import (
	"errors"
	"strings"
	"time"

	"hackhub-backend/apperr"
	"hackhub-backend/middleware"
	"hackhub-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type EventService struct {
	DB *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db}
}

// EventFilters narrows the event listing. Text search is a
// case-insensitive substring match over title and description.
type EventFilters struct {
	Status      string
	Category    string
	Search      string
	OrganizerID string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (s *EventService) listEvents(f EventFilters) ([]models.Event, error) {
	q := s.DB.Model(&models.Event{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}
	if f.OrganizerID != "" {
		q = q.Where("organizer_id = ?", f.OrganizerID)
	}
	if f.StartDate != nil {
		q = q.Where("start_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("end_date <= ?", *f.EndDate)
	}
	var events []models.Event
	if err := q.Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventService) getEvent(id string) (*models.Event, error) {
	var event models.Event
	if err := s.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// getEventDetails returns the event with its organizer and registrations
// preloaded. Foreign keys are enforced, so the joins only come back empty
// if referential integrity was violated out of band.
func (s *EventService) getEventDetails(id string) (*models.Event, error) {
	var event models.Event
	err := s.DB.Preload("Organizer").Preload("Registrations").
		First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetEvents handles GET /api/events. Public.
func (s *EventService) GetEvents(c *fiber.Ctx) error {
	f := EventFilters{
		Status:      c.Query("status"),
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		OrganizerID: c.Query("organizer_id"),
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return respondErr(c, &apperr.ValidationError{Fields: map[string]string{"start_date": "must be an RFC3339 timestamp"}})
		}
		f.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return respondErr(c, &apperr.ValidationError{Fields: map[string]string{"end_date": "must be an RFC3339 timestamp"}})
		}
		f.EndDate = &t
	}
	events, err := s.listEvents(f)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(events)
}

// GetEvent handles GET /api/events/:id. Public.
func (s *EventService) GetEvent(c *fiber.Ctx) error {
	event, err := s.getEventDetails(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(event)
}

// GetEventBySlug handles GET /api/events/slug/:slug. Public.
func (s *EventService) GetEventBySlug(c *fiber.Ctx) error {
	var event models.Event
	err := s.DB.First(&event, "slug = ?", c.Params("slug")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondErr(c, apperr.ErrNotFound)
		}
		return respondErr(c, err)
	}
	return s.respondEventDetails(c, event.ID)
}

func (s *EventService) respondEventDetails(c *fiber.Ctx, id string) error {
	event, err := s.getEventDetails(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(event)
}

type eventRequest struct {
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	ShortDescription     *string              `json:"short_description"`
	Status               *string              `json:"status"`
	StartDate            string               `json:"start_date"`
	EndDate              string               `json:"end_date"`
	RegistrationDeadline string               `json:"registration_deadline"`
	MaxParticipants      *int                 `json:"max_participants"`
	PrizePool            *string              `json:"prize_pool"`
	Category             *string              `json:"category"`
	Difficulty           *string              `json:"difficulty"`
	Requirements         *string              `json:"requirements"`
	Rules                *string              `json:"rules"`
	JudgesCriteria       *string              `json:"judges_criteria"`
	Resources            *models.ResourceList `json:"resources"`
	Tags                 *models.StringList   `json:"tags"`
	BannerImageURL       *string              `json:"banner_image_url"`
	IsPublic             *bool                `json:"is_public"`
	AllowTeams           *bool                `json:"allow_teams"`
	MaxTeamSize          *int                 `json:"max_team_size"`
}

// CreateEvent handles POST /api/events. Organizer or admin only; the
// caller becomes the event's organizer.
func (s *EventService) CreateEvent(c *fiber.Ctx) error {
	caller, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	if err := middleware.Authorize(caller, middleware.CapOrganizer, ""); err != nil {
		return respondErr(c, err)
	}

	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, &apperr.ValidationError{Fields: map[string]string{"body": "invalid JSON"}})
	}

	violations := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		violations["title"] = "is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		violations["description"] = "is required"
	}
	var startDate, endDate, deadline time.Time
	if req.StartDate == "" {
		violations["start_date"] = "is required"
	} else {
		startDate = parseRFC3339(req.StartDate, "start_date", violations)
	}
	if req.EndDate == "" {
		violations["end_date"] = "is required"
	} else {
		endDate = parseRFC3339(req.EndDate, "end_date", violations)
	}
	if req.RegistrationDeadline == "" {
		violations["registration_deadline"] = "is required"
	} else {
		deadline = parseRFC3339(req.RegistrationDeadline, "registration_deadline", violations)
	}
	status := models.EventStatusDraft
	if req.Status != nil {
		if !models.ValidEventStatus(*req.Status) {
			violations["status"] = "is not a valid event status"
		} else {
			status = *req.Status
		}
	}
	if req.Difficulty != nil && *req.Difficulty != "" && !models.ValidDifficulty(*req.Difficulty) {
		violations["difficulty"] = "must be one of beginner, intermediate, advanced"
	}
	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		violations["max_participants"] = "must be at least 1"
	}
	if req.MaxTeamSize != nil && *req.MaxTeamSize < 1 {
		violations["max_team_size"] = "must be at least 1"
	}
	if err := apperr.NewValidation(violations); err != nil {
		return respondErr(c, err)
	}

	event := models.Event{
		ID:                   uuid.NewString(),
		Title:                req.Title,
		Description:          req.Description,
		Slug:                 slug.Make(req.Title),
		OrganizerID:          caller.ID,
		Status:               status,
		StartDate:            startDate,
		EndDate:              endDate,
		RegistrationDeadline: deadline,
		MaxParticipants:      req.MaxParticipants,
		Resources:            models.ResourceList{},
		Tags:                 models.StringList{},
		IsPublic:             true,
		AllowTeams:           true,
		MaxTeamSize:          4,
	}
	if req.ShortDescription != nil {
		event.ShortDescription = *req.ShortDescription
	}
	if req.PrizePool != nil {
		event.PrizePool = *req.PrizePool
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Difficulty != nil {
		event.Difficulty = *req.Difficulty
	}
	if req.Requirements != nil {
		event.Requirements = *req.Requirements
	}
	if req.Rules != nil {
		event.Rules = *req.Rules
	}
	if req.JudgesCriteria != nil {
		event.JudgesCriteria = *req.JudgesCriteria
	}
	if req.Resources != nil {
		event.Resources = *req.Resources
	}
	if req.Tags != nil {
		event.Tags = *req.Tags
	}
	if req.BannerImageURL != nil {
		event.BannerImageURL = *req.BannerImageURL
	}
	if req.IsPublic != nil {
		event.IsPublic = *req.IsPublic
	}
	if req.AllowTeams != nil {
		event.AllowTeams = *req.AllowTeams
	}
	if req.MaxTeamSize != nil {
		event.MaxTeamSize = *req.MaxTeamSize
	}

	if err := s.DB.Create(&event).Error; err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(event)
}

// UpdateEvent handles PATCH /api/events/:id. Owner or admin. Provided
// fields are merged; absent fields are left untouched.
func (s *EventService) UpdateEvent(c *fiber.Ctx) error {
	caller, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	event, err := s.getEvent(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	if err := middleware.Authorize(caller, middleware.CapOwnerOrAdmin, event.OrganizerID); err != nil {
		return respondErr(c, err)
	}

	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, &apperr.ValidationError{Fields: map[string]string{"body": "invalid JSON"}})
	}

	violations := map[string]string{}
	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Title != "" {
		updates["title"] = req.Title
		updates["slug"] = slug.Make(req.Title)
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.StartDate != "" {
		updates["start_date"] = parseRFC3339(req.StartDate, "start_date", violations)
	}
	if req.EndDate != "" {
		updates["end_date"] = parseRFC3339(req.EndDate, "end_date", violations)
	}
	if req.RegistrationDeadline != "" {
		updates["registration_deadline"] = parseRFC3339(req.RegistrationDeadline, "registration_deadline", violations)
	}
	if req.Status != nil {
		if !models.ValidEventStatus(*req.Status) {
			violations["status"] = "is not a valid event status"
		} else {
			updates["status"] = *req.Status
		}
	}
	if req.Difficulty != nil {
		if *req.Difficulty != "" && !models.ValidDifficulty(*req.Difficulty) {
			violations["difficulty"] = "must be one of beginner, intermediate, advanced"
		} else {
			updates["difficulty"] = *req.Difficulty
		}
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < 1 {
			violations["max_participants"] = "must be at least 1"
		} else {
			updates["max_participants"] = *req.MaxParticipants
		}
	}
	if req.MaxTeamSize != nil {
		if *req.MaxTeamSize < 1 {
			violations["max_team_size"] = "must be at least 1"
		} else {
			updates["max_team_size"] = *req.MaxTeamSize
		}
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
	}
	if req.PrizePool != nil {
		updates["prize_pool"] = *req.PrizePool
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Requirements != nil {
		updates["requirements"] = *req.Requirements
	}
	if req.Rules != nil {
		updates["rules"] = *req.Rules
	}
	if req.JudgesCriteria != nil {
		updates["judges_criteria"] = *req.JudgesCriteria
	}
	if req.Resources != nil {
		updates["resources"] = *req.Resources
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.BannerImageURL != nil {
		updates["banner_image_url"] = *req.BannerImageURL
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if req.AllowTeams != nil {
		updates["allow_teams"] = *req.AllowTeams
	}
	if err := apperr.NewValidation(violations); err != nil {
		return respondErr(c, err)
	}

	if err := s.DB.Model(event).Updates(updates).Error; err != nil {
		return respondErr(c, err)
	}
	if err := s.DB.First(event, "id = ?", event.ID).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/events/:id. Owner or admin. The store
// cascades the delete to registrations and leaderboard entries.
func (s *EventService) DeleteEvent(c *fiber.Ctx) error {
	caller, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	event, err := s.getEvent(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	if err := middleware.Authorize(caller, middleware.CapOwnerOrAdmin, event.OrganizerID); err != nil {
		return respondErr(c, err)
	}
	if err := s.DB.Delete(&models.Event{}, "id = ?", event.ID).Error; err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(204)
}

// GetEventRegistrations handles GET /api/events/:id/registrations. Owner
// or admin; each registration carries its user.
func (s *EventService) GetEventRegistrations(c *fiber.Ctx) error {
	caller, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	event, err := s.getEvent(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	if err := middleware.Authorize(caller, middleware.CapOwnerOrAdmin, event.OrganizerID); err != nil {
		return respondErr(c, err)
	}
	var regs []models.EventRegistration
	if err := s.DB.Preload("User").Where("event_id = ?", event.ID).
		Order("registered_at ASC").Find(&regs).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(regs)
}
