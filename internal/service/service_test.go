package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"topic-planner/internal/repository"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

type env struct {
	topicRepo  *repository.TopicRepository
	taskRepo   *repository.TaskRepository
	topics     *TopicService
	tasks      *TaskService
	queries    *QueryService
	recurrence *RecurrenceService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "planner_test.db"))
	require.NoError(t, err)

	clock := fixedClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	topicRepo := repository.NewTopicRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	recurrence := NewRecurrenceService(taskRepo, clock)
	lock := NewStoreLock()

	return &env{
		topicRepo:  topicRepo,
		taskRepo:   taskRepo,
		topics:     NewTopicService(topicRepo, clock, lock),
		tasks:      NewTaskService(taskRepo, topicRepo, recurrence, clock, lock),
		queries:    NewQueryService(topicRepo, taskRepo),
		recurrence: recurrence,
	}
}

func validTask(title, date string) TaskInput {
	return TaskInput{
		Title:     title,
		Date:      date,
		StartTime: "09:00",
		EndTime:   "10:00",
	}
}
