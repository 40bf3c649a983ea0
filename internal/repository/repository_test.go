package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"topic-planner/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "planner_test.db"))
	require.NoError(t, err)
	return db
}

func strPtr(s string) *string { return &s }

func testTopic(id, owner, title string) *model.Topic {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Topic{
		ID:        id,
		OwnerID:   owner,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testTask(id, owner, title, date string) *model.Task {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Task{
		ID:        id,
		OwnerID:   owner,
		Title:     title,
		StartTime: "09:00",
		EndTime:   "10:00",
		Date:      date,
		Status:    model.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
