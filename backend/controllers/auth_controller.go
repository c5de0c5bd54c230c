package controllers

import (
	"errors"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new user account and returns a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterInput true "User registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         "user",
		RefreshToken: uuid.NewString(),
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.BadRequest(c, "Username or email already taken")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Created(c, fiber.Map{
		"token":        token,
		"refreshToken": user.RefreshToken,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := ac.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	// Rotate the refresh token on every login.
	user.RefreshToken = uuid.NewString()
	if err := ac.DB.Model(&user).Update("refresh_token", user.RefreshToken).Error; err != nil {
		return utils.InternalServerError(c, "Could not update refresh token")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token":        token,
		"refreshToken": user.RefreshToken,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Refresh exchanges a refresh token for a fresh JWT and rotates the
// refresh token.
func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	var input RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var user models.User
	if err := ac.DB.Where("refresh_token = ?", input.RefreshToken).First(&user).Error; err != nil {
		return utils.Unauthorized(c, "Invalid refresh token")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	user.RefreshToken = uuid.NewString()
	if err := ac.DB.Model(&user).Update("refresh_token", user.RefreshToken).Error; err != nil {
		return utils.InternalServerError(c, "Could not rotate refresh token")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token":        token,
		"refreshToken": user.RefreshToken,
	})
}
