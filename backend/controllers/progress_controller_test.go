package controllers_test

import (
	"fmt"
	"testing"
	"time"

	"project/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func seedCurriculum(t *testing.T, env *testEnv) (models.Topic, models.Problem, models.Problem) {
	t.Helper()

	topic := models.Topic{Title: "Arrays", Slug: "arrays", Difficulty: "beginner"}
	if err := env.db.Create(&topic).Error; err != nil {
		t.Fatalf("seed topic: %v", err)
	}
	p1 := models.Problem{TopicID: topic.ID, Title: "Two Sum", Slug: "two-sum", Difficulty: models.DifficultyEasy}
	p2 := models.Problem{TopicID: topic.ID, Title: "3Sum", Slug: "3sum", Difficulty: models.DifficultyHard}
	if err := env.db.Create(&p1).Error; err != nil {
		t.Fatalf("seed problem: %v", err)
	}
	if err := env.db.Create(&p2).Error; err != nil {
		t.Fatalf("seed problem: %v", err)
	}
	return topic, p1, p2
}

func TestUpdateProgressUpsertsSingleRow(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "upserter", "user")
	_, p1, _ := seedCurriculum(t, env)

	path := fmt.Sprintf("/api/progress/problem/%d", p1.ID)

	resp := env.request(t, "PUT", path, token, map[string]interface{}{
		"status":    "attempted",
		"timeSpent": 10,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, "PUT", path, token, map[string]interface{}{
		"status":    "completed",
		"timeSpent": 5,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Still exactly one row for the (user, problem) pair.
	var count int64
	env.db.Model(&models.Progress{}).
		Where("user_id = ? AND problem_id = ?", user.ID, p1.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)

	var progress models.Progress
	env.db.Where("user_id = ? AND problem_id = ?", user.ID, p1.ID).First(&progress)
	assert.Equal(t, 2, progress.Attempts)
	assert.Equal(t, models.StatusCompleted, progress.Status)
	assert.Equal(t, 15, progress.TimeSpent)
	assert.NotNil(t, progress.CompletedDate)
}

func TestCompletedDateSetOnce(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "oncer", "user")
	_, p1, _ := seedCurriculum(t, env)

	path := fmt.Sprintf("/api/progress/problem/%d", p1.ID)
	env.request(t, "PUT", path, token, map[string]interface{}{"status": "completed"})

	var first models.Progress
	env.db.Where("user_id = ? AND problem_id = ?", user.ID, p1.ID).First(&first)

	time.Sleep(10 * time.Millisecond)
	env.request(t, "PUT", path, token, map[string]interface{}{"status": "completed"})

	var second models.Progress
	env.db.Where("user_id = ? AND problem_id = ?", user.ID, p1.ID).First(&second)
	assert.Equal(t, first.CompletedDate.Unix(), second.CompletedDate.Unix())
}

func TestUpdateProgressValidatesStatus(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "validator", "user")
	_, p1, _ := seedCurriculum(t, env)

	resp := env.request(t, "PUT", fmt.Sprintf("/api/progress/problem/%d", p1.ID), token,
		map[string]interface{}{"status": "solvedish"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateProgressUnknownProblem(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "loster", "user")

	resp := env.request(t, "PUT", "/api/progress/problem/9999", token,
		map[string]interface{}{"status": "attempted"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProgressScenarioEndToEnd(t *testing.T) {
	// Complete P1 (10 min) then attempt P2 (5 min) on the same day.
	env := newTestEnv(t)
	user, token := env.createUser(t, "scenario", "user")
	_, p1, p2 := seedCurriculum(t, env)

	env.request(t, "PUT", fmt.Sprintf("/api/progress/problem/%d", p1.ID), token,
		map[string]interface{}{"status": "completed", "timeSpent": 10})
	env.request(t, "PUT", fmt.Sprintf("/api/progress/problem/%d", p2.ID), token,
		map[string]interface{}{"status": "attempted", "timeSpent": 5})

	resp := env.request(t, "GET", "/api/progress/user", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)

	stats := data["completionStats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total"])
	assert.Equal(t, float64(1), stats["completed"])
	assert.Equal(t, float64(1), stats["attempted"])
	assert.Equal(t, float64(50), stats["percentage"])

	// Writeback populated the denormalized snapshot.
	var got models.User
	env.db.First(&got, user.ID)
	assert.Equal(t, 1, got.Stats.TotalSolved)
	assert.Equal(t, 1, got.Stats.EasySolved)
	assert.Equal(t, 15, got.Stats.TotalTimeSpent)
	assert.Equal(t, 1, got.Stats.Streak)

	resp = env.request(t, "GET", "/api/progress/streak", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	streak := decodeData(t, resp)
	assert.Equal(t, float64(1), streak["currentStreak"])
}

func TestTopicDetailedIncludesUntouchedProblems(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "detailer", "user")
	topic, p1, _ := seedCurriculum(t, env)

	env.request(t, "PUT", fmt.Sprintf("/api/progress/problem/%d", p1.ID), token,
		map[string]interface{}{"status": "completed", "timeSpent": 10})

	resp := env.request(t, "GET", "/api/progress/topic/"+topic.Slug+"/detailed", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)

	problems := data["problems"].([]interface{})
	assert.Len(t, problems, 2)

	statusBySlug := make(map[string]string)
	for _, raw := range problems {
		p := raw.(map[string]interface{})
		statusBySlug[p["slug"].(string)] = p["status"].(string)
	}
	assert.Equal(t, models.StatusCompleted, statusBySlug["two-sum"])
	assert.Equal(t, models.StatusPending, statusBySlug["3sum"])
}

func TestBookmarksListing(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "marker", "user")
	_, p1, p2 := seedCurriculum(t, env)

	env.request(t, "PUT", fmt.Sprintf("/api/progress/problem/%d", p1.ID), token,
		map[string]interface{}{"status": "revisit", "isBookmarked": true})
	env.request(t, "PUT", fmt.Sprintf("/api/progress/problem/%d", p2.ID), token,
		map[string]interface{}{"status": "attempted"})

	resp := env.request(t, "GET", "/api/progress/bookmarks", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	decodeInto(t, resp, &envelope)
	assert.Len(t, envelope.Data, 1)
	assert.Equal(t, "Two Sum", envelope.Data[0]["problemTitle"])
}

func TestLeaderboardReflectsWriteback(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "climber", "user")
	_, p1, _ := seedCurriculum(t, env)

	env.request(t, "PUT", fmt.Sprintf("/api/progress/problem/%d", p1.ID), token,
		map[string]interface{}{"status": "completed", "timeSpent": 10})

	resp := env.request(t, "GET", "/api/leaderboard?sort=totalSolved", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data  []map[string]interface{} `json:"data"`
		Total float64                  `json:"total"`
	}
	decodeInto(t, resp, &envelope)
	assert.Equal(t, float64(1), envelope.Total)
	assert.Equal(t, "climber", envelope.Data[0]["username"])
	assert.Equal(t, float64(1), envelope.Data[0]["totalSolved"])
}
