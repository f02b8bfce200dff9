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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegistrationService struct {
	DB *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{DB: db}
}

// RegistrationInput is the optional team payload supplied at registration.
type RegistrationInput struct {
	TeamName    string                `json:"team_name"`
	TeamMembers models.TeamMemberList `json:"team_members"`
}

// Register enrolls userID in eventID. The whole workflow runs in one
// transaction with the event row locked, so the capacity check, the
// insert, and the counter increment appear atomic to concurrent
// registrations for the same event. The counter is bumped with a relative
// update; the unique (event_id, user_id) index is the authoritative
// duplicate guard.
func (s *RegistrationService) Register(eventID, userID string, input RegistrationInput) (*models.EventRegistration, error) {
	var created models.EventRegistration
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		if event.Status != models.EventStatusUpcoming {
			return &apperr.InvalidStateError{Reason: "registration is not open for this event"}
		}
		if time.Now().After(event.RegistrationDeadline) {
			return &apperr.InvalidStateError{Reason: "registration deadline has passed"}
		}
		if event.MaxParticipants != nil && event.CurrentParticipants >= *event.MaxParticipants {
			return apperr.ErrCapacityExceeded
		}

		// Fast path only; the unique index below is what actually guards.
		var count int64
		if err := tx.Model(&models.EventRegistration{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.ErrDuplicateRegistration
		}

		if err := validateTeam(&event, input); err != nil {
			return err
		}

		created = models.EventRegistration{
			ID:          uuid.NewString(),
			EventID:     eventID,
			UserID:      userID,
			TeamName:    input.TeamName,
			TeamMembers: input.TeamMembers,
			Status:      models.RegistrationStatusConfirmed,
		}
		if created.TeamMembers == nil {
			created.TeamMembers = models.TeamMemberList{}
		}
		if err := tx.Create(&created).Error; err != nil {
			if isDuplicateKey(err) {
				return apperr.ErrDuplicateRegistration
			}
			return err
		}

		return tx.Model(&models.Event{}).Where("id = ?", eventID).
			UpdateColumn("current_participants", gorm.Expr("current_participants + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Cancel removes a registration. The owning user or an admin may cancel;
// the row delete and the counter decrement commit together.
func (s *RegistrationService) Cancel(registrationID string, requester *models.User) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var reg models.EventRegistration
		if err := tx.First(&reg, "id = ?", registrationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		if err := middleware.Authorize(requester, middleware.CapOwnerOrAdmin, reg.UserID); err != nil {
			return err
		}
		if err := tx.Delete(&models.LeaderboardEntry{}, "registration_id = ?", reg.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.EventRegistration{}, "id = ?", reg.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Event{}).Where("id = ?", reg.EventID).
			UpdateColumn("current_participants", gorm.Expr("current_participants - 1")).Error
	})
}

func validateTeam(event *models.Event, input RegistrationInput) error {
	if input.TeamName == "" && len(input.TeamMembers) == 0 {
		return nil
	}
	violations := map[string]string{}
	if !event.AllowTeams {
		violations["team_name"] = "this event does not allow team registrations"
	}
	if event.MaxTeamSize > 0 && len(input.TeamMembers) > event.MaxTeamSize {
		violations["team_members"] = "team size exceeds the event limit"
	}
	for _, m := range input.TeamMembers {
		if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" {
			violations["team_members"] = "each member needs a name and an email"
			break
		}
	}
	return apperr.NewValidation(violations)
}

// RegisterForEvent handles POST /api/events/:id/register.
func (s *RegistrationService) RegisterForEvent(c *fiber.Ctx) error {
	caller, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	var input RegistrationInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return respondErr(c, &apperr.ValidationError{Fields: map[string]string{"body": "invalid JSON"}})
		}
	}
	reg, err := s.Register(c.Params("id"), caller.ID, input)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(reg)
}

// CancelRegistration handles DELETE /api/registrations/:id.
func (s *RegistrationService) CancelRegistration(c *fiber.Ctx) error {
	caller, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	if err := s.Cancel(c.Params("id"), caller); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(204)
}

// GetUserRegistrations handles GET /api/users/:id/registrations. A user
// may list their own registrations; admins may list anyone's. Each
// registration carries its event.
func (s *RegistrationService) GetUserRegistrations(c *fiber.Ctx) error {
	caller, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	targetID := c.Params("id")
	if err := middleware.Authorize(caller, middleware.CapOwnerOrAdmin, targetID); err != nil {
		return respondErr(c, err)
	}
	var regs []models.EventRegistration
	if err := s.DB.Preload("Event").Where("user_id = ?", targetID).
		Order("registered_at DESC").Find(&regs).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(regs)
}

// UpdateSubmission handles PATCH /api/registrations/:id — the owner
// attaches or revises their project submission.
func (s *RegistrationService) UpdateSubmission(c *fiber.Ctx) error {
	type Req struct {
		SubmissionURL         *string `json:"submission_url"`
		SubmissionDescription *string `json:"submission_description"`
	}
	caller, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	var reg models.EventRegistration
	if err := s.DB.First(&reg, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondErr(c, apperr.ErrNotFound)
		}
		return respondErr(c, err)
	}
	if err := middleware.Authorize(caller, middleware.CapOwnerOrAdmin, reg.UserID); err != nil {
		return respondErr(c, err)
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, &apperr.ValidationError{Fields: map[string]string{"body": "invalid JSON"}})
	}
	now := time.Now()
	updates := map[string]interface{}{"submitted_at": &now}
	if req.SubmissionURL != nil {
		updates["submission_url"] = *req.SubmissionURL
	}
	if req.SubmissionDescription != nil {
		updates["submission_description"] = *req.SubmissionDescription
	}
	if err := s.DB.Model(&reg).Updates(updates).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(reg)
}
