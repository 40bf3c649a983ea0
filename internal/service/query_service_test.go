package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topic-planner/internal/model"
)

func TestSearchTopics(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	work, err := e.topics.CreateTopic(ctx, "alice", TopicInput{Title: "Deep Work"})
	require.NoError(t, err)
	workout, err := e.topics.CreateTopic(ctx, "alice", TopicInput{Title: "Workout"})
	require.NoError(t, err)
	_, err = e.topics.CreateTopic(ctx, "alice", TopicInput{Title: "Reading"})
	require.NoError(t, err)
	_, err = e.topics.CreateTopic(ctx, "bob", TopicInput{Title: "Work things"})
	require.NoError(t, err)

	input := validTask("Focus block", "2024-01-05")
	input.TopicID = &work.ID
	_, err = e.tasks.CreateTask(ctx, "alice", input)
	require.NoError(t, err)

	require.NoError(t, e.topics.DeleteTopic(ctx, "alice", workout.ID))

	found := e.queries.SearchTopics(ctx, "alice", "WORK")
	require.Len(t, found, 1, "live topics of the owner only")
	assert.Equal(t, work.ID, found[0].ID)
	assert.Equal(t, int64(1), found[0].TaskCount)
}

func TestTasksForDate_TopicFilterAndJoin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	topic, err := e.topics.CreateTopic(ctx, "alice", TopicInput{Title: "Work"})
	require.NoError(t, err)

	inTopic := validTask("Report", "2024-01-05")
	inTopic.TopicID = &topic.ID
	_, err = e.tasks.CreateTask(ctx, "alice", inTopic)
	require.NoError(t, err)

	free := validTask("Errand", "2024-01-05")
	free.StartTime = "11:00"
	free.EndTime = "11:30"
	_, err = e.tasks.CreateTask(ctx, "alice", free)
	require.NoError(t, err)

	all := e.queries.TasksForDate(ctx, "alice", "2024-01-05", nil, nil)
	assert.Len(t, all, 2)

	filtered := e.queries.TasksForDate(ctx, "alice", "2024-01-05", nil, &topic.ID)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Report", filtered[0].Title)
	require.NotNil(t, filtered[0].TopicTitle)
	assert.Equal(t, "Work", *filtered[0].TopicTitle)
}

func TestTasksForDate_StatusFilter(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	task, err := e.tasks.CreateTask(ctx, "alice", validTask("Report", "2024-01-05"))
	require.NoError(t, err)
	_, err = e.tasks.CompleteTask(ctx, "alice", task.ID)
	require.NoError(t, err)

	other := validTask("Errand", "2024-01-05")
	other.StartTime = "11:00"
	_, err = e.tasks.CreateTask(ctx, "alice", other)
	require.NoError(t, err)

	pending := model.StatusPending
	got := e.queries.TasksForDate(ctx, "alice", "2024-01-05", &pending, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Errand", got[0].Title)
}

func TestTasksByTopic(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	topic, err := e.topics.CreateTopic(ctx, "alice", TopicInput{Title: "Work"})
	require.NoError(t, err)

	input := validTask("Report", "2024-01-05")
	input.TopicID = &topic.ID
	task, err := e.tasks.CreateTask(ctx, "alice", input)
	require.NoError(t, err)

	got := e.queries.TasksByTopic(ctx, "alice", topic.ID)
	require.Len(t, got, 1)
	assert.Equal(t, task.ID, got[0].ID)
}
