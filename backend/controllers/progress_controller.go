package controllers

import (
	"errors"
	"time"

	"project/backend/config"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Aggregator *services.ProgressAggregator
	Stats      *services.StatsWriter
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{
		DB:         db,
		Cfg:        cfg,
		Aggregator: services.NewProgressAggregator(db),
		Stats:      services.NewStatsWriter(db),
	}
}

// GetUserProgress godoc
// @Summary Get aggregated progress
// @Description Completion stats, per-topic rollups and recent activity for the authenticated user
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/user [get]
func (pc *ProgressController) GetUserProgress(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	limit := c.QueryInt("limit", 10)

	summary, err := pc.Aggregator.Aggregate(userID, limit)
	if err != nil {
		return utils.InternalServerError(c, "Failed to aggregate progress")
	}

	return utils.Success(c, fiber.StatusOK, summary)
}

type UpdateProgressInput struct {
	Status       string `json:"status" validate:"required,oneof=pending attempted completed revisit"`
	TimeSpent    int    `json:"timeSpent" validate:"min=0"` // minutes spent this session, added to the cumulative counter
	Confidence   int    `json:"confidence" validate:"omitempty,min=1,max=5"`
	Notes        string `json:"notes"`
	Code         string `json:"code"`
	Language     string `json:"language"`
	IsBookmarked *bool  `json:"isBookmarked"`
}

// UpdateProblemProgress godoc
// @Summary Update progress on a problem
// @Description Upserts the (user, problem) progress row and triggers the stats writeback
// @Tags progress
// @Accept json
// @Produce json
// @Param problemId path int true "Problem ID"
// @Param request body UpdateProgressInput true "Progress update"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/problem/{problemId} [put]
func (pc *ProgressController) UpdateProblemProgress(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	problemID, err := c.ParamsInt("problemId")
	if err != nil {
		return utils.BadRequest(c, "Invalid problem ID")
	}

	var input UpdateProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var problem models.Problem
	if err := pc.DB.First(&problem, problemID).Error; err != nil {
		return utils.NotFound(c, "Problem not found")
	}

	progress, err := pc.upsertProgress(userID, uint(problemID), input)
	if err != nil {
		return utils.InternalServerError(c, "Failed to update progress")
	}

	// Writeback failure leaves the snapshot stale but derivable; the
	// progress row above stays committed either way.
	if err := pc.Stats.RecomputeUserStats(userID); err != nil {
		return utils.InternalServerError(c, "Failed to recompute stats")
	}

	return utils.Success(c, fiber.StatusOK, progress)
}

// upsertProgress mutates the single (user, problem) row, creating it
// lazily on first contact. A create losing the race against the unique
// index falls back to updating the row the winner inserted.
func (pc *ProgressController) upsertProgress(userID, problemID uint, input UpdateProgressInput) (*models.Progress, error) {
	now := time.Now()

	var progress models.Progress
	err := pc.DB.Where("user_id = ? AND problem_id = ?", userID, problemID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.Progress{UserID: userID, ProblemID: problemID}
		if err := pc.DB.Create(&progress).Error; err != nil {
			if ferr := pc.DB.Where("user_id = ? AND problem_id = ?", userID, problemID).
				First(&progress).Error; ferr != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	progress.Status = input.Status
	progress.TimeSpent += input.TimeSpent
	progress.Attempts++
	progress.LastAttemptDate = now
	if input.Confidence != 0 {
		progress.Confidence = input.Confidence
	}
	if input.Notes != "" {
		progress.Notes = input.Notes
	}
	if input.Code != "" {
		progress.Code = input.Code
	}
	if input.Language != "" {
		progress.Language = input.Language
	}
	if input.IsBookmarked != nil {
		progress.IsBookmarked = *input.IsBookmarked
	}
	if input.Status == models.StatusCompleted && progress.CompletedDate == nil {
		progress.CompletedDate = &now
	}

	if err := pc.DB.Save(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetStreak godoc
// @Summary Get streaks
// @Description Current and longest consecutive-day activity streaks
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/streak [get]
func (pc *ProgressController) GetStreak(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	result, err := pc.Stats.UserStreaks(userID, time.Now())
	if err != nil {
		return utils.InternalServerError(c, "Failed to compute streaks")
	}

	return utils.Success(c, fiber.StatusOK, result)
}

type topicProblemDetail struct {
	models.Problem
	Status       string     `json:"status"`
	TimeSpent    int        `json:"timeSpent"`
	Attempts     int        `json:"attempts"`
	Confidence   int        `json:"confidence"`
	IsBookmarked bool       `json:"isBookmarked"`
	CompletedAt  *time.Time `json:"completedAt"`
}

// GetTopicDetailed returns a topic's full problem list joined with the
// authenticated user's per-problem progress. Problems the user never
// touched come back with status "pending".
func (pc *ProgressController) GetTopicDetailed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	slug := c.Params("slug")

	var topic models.Topic
	if err := pc.DB.Where("slug = ?", slug).First(&topic).Error; err != nil {
		return utils.NotFound(c, "Topic not found")
	}

	var problems []models.Problem
	if err := pc.DB.Where("topic_id = ?", topic.ID).
		Order("sequence_order ASC").Find(&problems).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch problems")
	}

	var records []models.Progress
	if err := pc.DB.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch progress")
	}
	byProblem := make(map[uint]models.Progress, len(records))
	for _, r := range records {
		byProblem[r.ProblemID] = r
	}

	details := make([]topicProblemDetail, 0, len(problems))
	for _, p := range problems {
		d := topicProblemDetail{Problem: p, Status: models.StatusPending}
		if r, ok := byProblem[p.ID]; ok {
			d.Status = r.Status
			d.TimeSpent = r.TimeSpent
			d.Attempts = r.Attempts
			d.Confidence = r.Confidence
			d.IsBookmarked = r.IsBookmarked
			d.CompletedAt = r.CompletedDate
		}
		details = append(details, d)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"topic":    topic,
		"problems": details,
	})
}

// GetBookmarks lists the user's bookmarked progress rows with problem
// titles.
func (pc *ProgressController) GetBookmarks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var bookmarks []services.ActivityEntry
	err := pc.DB.Raw(`
		SELECT
			COALESCE(p.title, ?) AS problem_title,
			COALESCE(t.title, ?) AS topic,
			pr.status AS status,
			pr.updated_at AS date,
			pr.time_spent AS time_spent
		FROM progresses pr
		LEFT JOIN problems p ON p.id = pr.problem_id AND p.deleted_at IS NULL
		LEFT JOIN topics t ON t.id = p.topic_id AND t.deleted_at IS NULL
		WHERE pr.user_id = ? AND pr.is_bookmarked = ? AND pr.deleted_at IS NULL
		ORDER BY pr.updated_at DESC
	`, services.DeletedPlaceholder, services.DeletedPlaceholder, userID, true).
		Scan(&bookmarks).Error
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch bookmarks")
	}

	return utils.Success(c, fiber.StatusOK, bookmarks)
}
