package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"hackhub-backend/apperr"
	"hackhub-backend/middleware"
	"hackhub-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// respondErr maps a workflow error to its HTTP response. Internal errors
// are logged server-side and replaced with a generic message.
func respondErr(c *fiber.Ctx, err error) error {
	status := apperr.StatusCode(err)
	if apperr.IsInternal(err) {
		log.Printf("[%s %s] internal error: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"message": "internal server error"})
	}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return c.Status(status).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  ve.Fields,
		})
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}

// currentUser resolves the caller's User row, creating a participant row
// on first sight. Users exist from their first authenticated request.
func currentUser(db *gorm.DB, c *fiber.Ctx) (*models.User, error) {
	id := middleware.UserID(c)
	if id == "" {
		return nil, apperr.ErrUnauthenticated
	}
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	user = models.User{
		ID:    id,
		Email: middleware.UserEmail(c),
		Role:  models.RoleParticipant,
	}
	// Concurrent first requests may race on the insert; the existing row wins.
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
		return nil, err
	}
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// isDuplicateKey detects unique-constraint violations across the postgres
// and sqlite drivers.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// parseRFC3339 coerces a date field, recording a violation on failure.
func parseRFC3339(value, field string, violations map[string]string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		violations[field] = "must be an RFC3339 timestamp"
	}
	return t
}
