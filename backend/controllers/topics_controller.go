package controllers

import (
	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TopicsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTopicsController(db *gorm.DB, cfg *config.Config) *TopicsController {
	return &TopicsController{DB: db, Cfg: cfg}
}

// GetTopics lists the curriculum. Supports ?search=, ?difficulty= and
// ?sort=order|newest|problems.
func (tc *TopicsController) GetTopics(c *fiber.Ctx) error {
	search := c.Query("search")
	difficulty := c.Query("difficulty")
	sort := c.Query("sort", "order")

	query := tc.DB.Model(&models.Topic{})

	if search != "" {
		query = query.Where("title LIKE ? OR description LIKE ?",
			"%"+search+"%", "%"+search+"%")
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	switch sort {
	case "newest":
		query = query.Order("created_at DESC")
	case "problems":
		query = query.Order("total_problems DESC")
	default:
		query = query.Order("sequence_order ASC")
	}

	var topics []models.Topic
	if err := query.Find(&topics).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch topics")
	}

	return utils.Success(c, fiber.StatusOK, topics)
}

// GetTopicBySlug returns one topic with its ordered problem list.
func (tc *TopicsController) GetTopicBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var topic models.Topic
	err := tc.DB.Preload("Problems", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order ASC")
	}).Where("slug = ?", slug).First(&topic).Error
	if err != nil {
		return utils.NotFound(c, "Topic not found")
	}

	return utils.Success(c, fiber.StatusOK, topic)
}

type TopicInput struct {
	Title         string `json:"title" validate:"required"`
	Slug          string `json:"slug" validate:"required"`
	Description   string `json:"description"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	SequenceOrder int    `json:"sequenceOrder"`
}

func (tc *TopicsController) CreateTopic(c *fiber.Ctx) error {
	var input TopicInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	topic := models.Topic{
		Title:         input.Title,
		Slug:          input.Slug,
		Description:   input.Description,
		Difficulty:    input.Difficulty,
		SequenceOrder: input.SequenceOrder,
	}
	if topic.Difficulty == "" {
		topic.Difficulty = "beginner"
	}

	if err := tc.DB.Create(&topic).Error; err != nil {
		return utils.BadRequest(c, "Topic slug already exists")
	}

	return utils.Created(c, topic)
}

func (tc *TopicsController) UpdateTopic(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid topic ID")
	}

	var topic models.Topic
	if err := tc.DB.First(&topic, id).Error; err != nil {
		return utils.NotFound(c, "Topic not found")
	}

	var input TopicInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		topic.Title = input.Title
	}
	if input.Slug != "" {
		topic.Slug = input.Slug
	}
	if input.Description != "" {
		topic.Description = input.Description
	}
	if input.Difficulty != "" {
		topic.Difficulty = input.Difficulty
	}
	if input.SequenceOrder != 0 {
		topic.SequenceOrder = input.SequenceOrder
	}

	if err := tc.DB.Save(&topic).Error; err != nil {
		return utils.InternalServerError(c, "Failed to update topic")
	}

	return utils.Success(c, fiber.StatusOK, topic)
}

// DeleteTopic removes a topic and its problems. Progress rows pointing
// at the removed problems are kept; aggregations substitute a
// placeholder title for them.
func (tc *TopicsController) DeleteTopic(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid topic ID")
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&models.Problem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Topic{}, id).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Failed to delete topic")
	}

	return utils.NoContent(c)
}
