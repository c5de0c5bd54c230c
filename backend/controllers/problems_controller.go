package controllers

import (
	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProblemsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProblemsController(db *gorm.DB, cfg *config.Config) *ProblemsController {
	return &ProblemsController{DB: db, Cfg: cfg}
}

func (pc *ProblemsController) GetProblem(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var problem models.Problem
	if err := pc.DB.Where("slug = ?", slug).First(&problem).Error; err != nil {
		return utils.NotFound(c, "Problem not found")
	}

	return utils.Success(c, fiber.StatusOK, problem)
}

type ProblemInput struct {
	TopicID       uint   `json:"topicId" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Slug          string `json:"slug" validate:"required"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	Description   string `json:"description"`
	Hints         string `json:"hints"`
	ResourceLink  string `json:"resourceLink"`
	PracticeLink  string `json:"practiceLink"`
	SequenceOrder int    `json:"sequenceOrder"`
}

// CreateProblem adds a problem and bumps the owning topic's cached
// problem counter in the same transaction.
func (pc *ProblemsController) CreateProblem(c *fiber.Ctx) error {
	var input ProblemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var topic models.Topic
	if err := pc.DB.First(&topic, input.TopicID).Error; err != nil {
		return utils.NotFound(c, "Topic not found")
	}

	problem := models.Problem{
		TopicID:       input.TopicID,
		Title:         input.Title,
		Slug:          input.Slug,
		Difficulty:    input.Difficulty,
		Description:   input.Description,
		Hints:         input.Hints,
		ResourceLink:  input.ResourceLink,
		PracticeLink:  input.PracticeLink,
		SequenceOrder: input.SequenceOrder,
	}
	if problem.Difficulty == "" {
		problem.Difficulty = models.DifficultyMedium
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&problem).Error; err != nil {
			return err
		}
		return tx.Model(&models.Topic{}).Where("id = ?", input.TopicID).
			UpdateColumn("total_problems", gorm.Expr("total_problems + 1")).Error
	})
	if err != nil {
		return utils.BadRequest(c, "Problem slug already exists")
	}

	return utils.Created(c, problem)
}

func (pc *ProblemsController) UpdateProblem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid problem ID")
	}

	var problem models.Problem
	if err := pc.DB.First(&problem, id).Error; err != nil {
		return utils.NotFound(c, "Problem not found")
	}

	var input ProblemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		problem.Title = input.Title
	}
	if input.Slug != "" {
		problem.Slug = input.Slug
	}
	if input.Difficulty != "" {
		problem.Difficulty = input.Difficulty
	}
	if input.Description != "" {
		problem.Description = input.Description
	}
	if input.Hints != "" {
		problem.Hints = input.Hints
	}
	if input.ResourceLink != "" {
		problem.ResourceLink = input.ResourceLink
	}
	if input.PracticeLink != "" {
		problem.PracticeLink = input.PracticeLink
	}
	if input.SequenceOrder != 0 {
		problem.SequenceOrder = input.SequenceOrder
	}

	if err := pc.DB.Save(&problem).Error; err != nil {
		return utils.InternalServerError(c, "Failed to update problem")
	}

	return utils.Success(c, fiber.StatusOK, problem)
}

// DeleteProblem removes a problem and decrements the topic counter.
// Progress rows referencing it are left in place.
func (pc *ProblemsController) DeleteProblem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid problem ID")
	}

	var problem models.Problem
	if err := pc.DB.First(&problem, id).Error; err != nil {
		return utils.NotFound(c, "Problem not found")
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&problem).Error; err != nil {
			return err
		}
		return tx.Model(&models.Topic{}).Where("id = ? AND total_problems > 0", problem.TopicID).
			UpdateColumn("total_problems", gorm.Expr("total_problems - 1")).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Failed to delete problem")
	}

	return utils.NoContent(c)
}
