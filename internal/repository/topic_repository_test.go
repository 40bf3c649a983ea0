package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topic-planner/internal/model"
)

func TestTopicCreate_UpsertsByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testTopic("t1", "alice", "Work")))

	overwrite := testTopic("t1", "alice", "Deep Work")
	overwrite.Likes = 3
	require.NoError(t, repo.Create(ctx, overwrite))

	got, err := repo.FindByID(ctx, "alice", "t1")
	require.NoError(t, err)
	assert.Equal(t, "Deep Work", got.Title)
	assert.Equal(t, 3, got.Likes)

	topics, err := repo.ListByOwner(ctx, "alice", true)
	require.NoError(t, err)
	assert.Len(t, topics, 1, "upsert must not duplicate the row")
}

func TestTopicFindByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRepository(db)

	_, err := repo.FindByID(context.Background(), "alice", "nope")
	assert.True(t, model.IsNotFound(err))
}

func TestTopicSoftDelete_ClearsTaskRefs(t *testing.T) {
	db := newTestDB(t)
	topics := NewTopicRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	require.NoError(t, topics.Create(ctx, testTopic("t1", "alice", "Work")))

	task := testTask("k1", "alice", "Report", "2024-01-05")
	task.TopicID = strPtr("t1")
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, topics.SoftDelete(ctx, "alice", "t1"))

	// Topic is tombstoned, not erased.
	all, err := topics.ListByOwner(ctx, "alice", true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsDeleted)

	live, err := topics.ListByOwner(ctx, "alice", false)
	require.NoError(t, err)
	assert.Empty(t, live)

	// The referencing task lost its topic in the same operation.
	got, err := tasks.FindByID(ctx, "alice", "k1")
	require.NoError(t, err)
	assert.Nil(t, got.TopicID)
	assert.False(t, got.IsDeleted)
}

func TestTopicSoftDelete_MissingID(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRepository(db)

	err := repo.SoftDelete(context.Background(), "alice", "missing")
	assert.True(t, model.IsNotFound(err))
}

func TestTopicSearch_CaseInsensitiveLiveOnly(t *testing.T) {
	db := newTestDB(t)
	topics := NewTopicRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	require.NoError(t, topics.Create(ctx, testTopic("t1", "alice", "Deep Work")))
	require.NoError(t, topics.Create(ctx, testTopic("t2", "alice", "Workout")))
	require.NoError(t, topics.Create(ctx, testTopic("t3", "alice", "Reading")))
	require.NoError(t, topics.Create(ctx, testTopic("t4", "bob", "Work stuff")))

	// Live and deleted tasks under t1; only live ones count.
	live := testTask("k1", "alice", "Report", "2024-01-05")
	live.TopicID = strPtr("t1")
	require.NoError(t, tasks.Create(ctx, live))
	dead := testTask("k2", "alice", "Old report", "2024-01-04")
	dead.TopicID = strPtr("t1")
	dead.IsDeleted = true
	require.NoError(t, tasks.Create(ctx, dead))

	require.NoError(t, topics.SoftDelete(ctx, "alice", "t2"))

	found, err := topics.Search(ctx, "alice", "woRk")
	require.NoError(t, err)
	require.Len(t, found, 1, "only the live topic of the right owner matches")
	assert.Equal(t, "t1", found[0].ID)
	assert.Equal(t, int64(1), found[0].TaskCount)
}

func TestTopicListWithTaskCounts(t *testing.T) {
	db := newTestDB(t)
	topics := NewTopicRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	require.NoError(t, topics.Create(ctx, testTopic("t1", "alice", "Work")))
	require.NoError(t, topics.Create(ctx, testTopic("t2", "alice", "Health")))

	for _, id := range []string{"k1", "k2", "k3"} {
		task := testTask(id, "alice", "Task", "2024-01-05")
		task.TopicID = strPtr("t1")
		require.NoError(t, tasks.Create(ctx, task))
	}

	rows, err := topics.ListWithTaskCounts(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.ID] = row.TaskCount
	}
	assert.Equal(t, int64(3), counts["t1"])
	assert.Equal(t, int64(0), counts["t2"])
}
