package controllers

import (
	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// GetProfile returns the authenticated user with the denormalized
// stats snapshot, which the dashboard header reads directly.
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, user)
}

type UpdateProfileInput struct {
	Username string `json:"username" validate:"omitempty,min=3,max=32"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Email != "" {
		user.Email = input.Email
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.BadRequest(c, "Username or email already taken")
	}

	return utils.Success(c, fiber.StatusOK, user)
}

// DeleteAccount removes the user and cascades to their progress rows.
func (uc *UserController) DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Progress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete account")
	}

	return utils.NoContent(c)
}
