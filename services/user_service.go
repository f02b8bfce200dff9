package services

import (
	"time"

	"hackhub-backend/apperr"
	"hackhub-backend/middleware"
	"hackhub-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// GetCurrentUser returns the caller's profile, creating the participant
// row on first authentication.
func (s *UserService) GetCurrentUser(c *fiber.Ctx) error {
	user, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(user)
}

// UpdateProfile lets a user edit their own profile fields. Role changes
// go through UpdateUserRole only.
func (s *UserService) UpdateProfile(c *fiber.Ctx) error {
	type Req struct {
		FirstName       *string `json:"first_name"`
		LastName        *string `json:"last_name"`
		Email           *string `json:"email"`
		ProfileImageURL *string `json:"profile_image_url"`
	}
	user, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, &apperr.ValidationError{Fields: map[string]string{"body": "invalid JSON"}})
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.ProfileImageURL != nil {
		updates["profile_image_url"] = *req.ProfileImageURL
	}
	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(user)
}

// UpdateUserRole changes another user's role. Admin only. The target row
// is upserted so a role can be granted before the user's first login.
func (s *UserService) UpdateUserRole(c *fiber.Ctx) error {
	type Req struct {
		Role string `json:"role"`
	}
	caller, err := currentUser(s.DB, c)
	if err != nil {
		return respondErr(c, err)
	}
	if err := middleware.Authorize(caller, middleware.CapAdmin, ""); err != nil {
		return respondErr(c, err)
	}

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, &apperr.ValidationError{Fields: map[string]string{"body": "invalid JSON"}})
	}
	if !models.ValidRole(req.Role) {
		return respondErr(c, &apperr.ValidationError{Fields: map[string]string{
			"role": "must be one of admin, organizer, participant",
		}})
	}

	targetID := c.Params("id")
	target := models.User{ID: targetID, Role: req.Role}
	err = s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"role": req.Role, "updated_at": time.Now()}),
	}).Create(&target).Error
	if err != nil {
		return respondErr(c, err)
	}
	if err := s.DB.First(&target, "id = ?", targetID).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(target)
}
