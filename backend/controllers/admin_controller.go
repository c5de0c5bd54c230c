package controllers

import (
	"fmt"
	"time"

	"project/backend/config"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type AdminController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Analytics *services.AnalyticsService
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{
		DB:        db,
		Cfg:       cfg,
		Analytics: services.NewAnalyticsService(db),
	}
}

// GetDashboard returns the headline platform metrics plus recent
// snapshots for the admin charts.
func (ac *AdminController) GetDashboard(c *fiber.Ctx) error {
	metrics, err := ac.Analytics.PlatformMetrics()
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch metrics")
	}

	var snapshots []models.PlatformSnapshot
	if err := ac.DB.Order("date DESC").Limit(30).Find(&snapshots).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch snapshots")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"metrics":   metrics,
		"snapshots": snapshots,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GetAnalytics returns the platform-wide breakdowns: progress by
// status, completions by difficulty and per-topic totals.
func (ac *AdminController) GetAnalytics(c *fiber.Ctx) error {
	statuses, err := ac.Analytics.StatusBreakdown()
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch status breakdown")
	}

	difficulties, err := ac.Analytics.DifficultyBreakdown()
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch difficulty breakdown")
	}

	topics, err := ac.Analytics.TopicBreakdown()
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch topic breakdown")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"byStatus":     statuses,
		"byDifficulty": difficulties,
		"byTopic":      topics,
	})
}

// ExportAnalytics streams the platform breakdowns as an xlsx workbook.
func (ac *AdminController) ExportAnalytics(c *fiber.Ctx) error {
	statuses, err := ac.Analytics.StatusBreakdown()
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch status breakdown")
	}
	difficulties, err := ac.Analytics.DifficultyBreakdown()
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch difficulty breakdown")
	}
	topics, err := ac.Analytics.TopicBreakdown()
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch topic breakdown")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Analytics"
	f.SetSheetName("Sheet1", sheet)

	row := 1
	setRow := func(values ...interface{}) {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	setRow("Progress by status")
	setRow("Status", "Count")
	for _, s := range statuses {
		setRow(s.Status, s.Count)
	}
	row++

	setRow("Completions by difficulty")
	setRow("Difficulty", "Count")
	for _, d := range difficulties {
		setRow(d.Difficulty, d.Count)
	}
	row++

	setRow("Per-topic progress")
	setRow("Topic", "Slug", "Total", "Completed")
	for _, t := range topics {
		setRow(t.Title, t.Slug, t.Total, t.Completed)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return utils.InternalServerError(c, "Failed to build export")
	}

	filename := fmt.Sprintf("analytics-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
