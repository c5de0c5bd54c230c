package services

import (
	"context"
	"testing"

	"project/backend/models"

	"github.com/stretchr/testify/assert"
)

func TestLeaderboardRanksBySolved(t *testing.T) {
	db := newTestDB(t)
	for i, name := range []string{"bronze", "silver", "gold"} {
		u := seedUser(t, db, name)
		db.Model(&models.User{}).Where("id = ?", u.ID).
			Update("stats_total_solved", (i+1)*10)
	}

	svc := NewLeaderboardService(db, nil, nil)
	entries, total, err := svc.Top(context.Background(), "totalSolved", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, entries, 3)
	assert.Equal(t, "gold", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 30, entries[0].TotalSolved)
	assert.Equal(t, "bronze", entries[2].Username)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestLeaderboardPagination(t *testing.T) {
	db := newTestDB(t)
	for i, name := range []string{"a", "bb", "ccc", "dddd", "eeeee"} {
		u := seedUser(t, db, name)
		db.Model(&models.User{}).Where("id = ?", u.ID).
			Update("stats_total_solved", i)
	}

	svc := NewLeaderboardService(db, nil, nil)
	entries, total, err := svc.Top(context.Background(), "totalSolved", 2, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].Rank)
	assert.Equal(t, "ccc", entries[0].Username)
}

func TestLeaderboardUnknownSortFallsBack(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "solo")

	svc := NewLeaderboardService(db, nil, nil)
	entries, _, err := svc.Top(context.Background(), "passwordHash", 1, 20)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}
