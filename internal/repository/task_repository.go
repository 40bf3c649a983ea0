package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"topic-planner/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task, or overwrites the stored row when the id
// already exists. Sync adoption relies on this upsert behavior.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(task).Error
	if err != nil {
		return storageErr("create task", err)
	}
	return nil
}

// Save persists field changes of an already-loaded task.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return storageErr("save task", err)
	}
	return nil
}

const taskDetailSelect = "tasks.*, topics.title AS topic_title, topics.category_id AS topic_category"

// FindByID returns the task joined with its owning topic's title and
// category when the topic is still live.
func (r *TaskRepository) FindByID(ctx context.Context, ownerID, taskID string) (*model.TaskDetail, error) {
	var detail model.TaskDetail
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select(taskDetailSelect).
		Joins("LEFT JOIN topics ON topics.id = tasks.topic_id AND topics.is_deleted = ?", false).
		Where("tasks.user_id = ? AND tasks.id = ?", ownerID, taskID).
		First(&detail).Error
	switch {
	case err == nil:
		return &detail, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, &model.NotFoundError{Entity: "task", ID: taskID}
	default:
		return nil, storageErr("find task", err)
	}
}

// ListByDate returns the owner's live tasks for a date, optionally
// narrowed by status and topic, each joined with live topic info.
func (r *TaskRepository) ListByDate(ctx context.Context, ownerID, date string, status *model.TaskStatus, topicID *string) ([]model.TaskDetail, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Select(taskDetailSelect).
		Joins("LEFT JOIN topics ON topics.id = tasks.topic_id AND topics.is_deleted = ?", false).
		Where("tasks.user_id = ? AND tasks.date = ? AND tasks.is_deleted = ?", ownerID, date, false)
	if status != nil {
		q = q.Where("tasks.status = ?", *status)
	}
	if topicID != nil {
		q = q.Where("tasks.topic_id = ?", *topicID)
	}
	var details []model.TaskDetail
	if err := q.Order("tasks.start_time ASC, tasks.created_at ASC").Scan(&details).Error; err != nil {
		return nil, storageErr("list tasks by date", err)
	}
	return details, nil
}

func (r *TaskRepository) ListByTopic(ctx context.Context, ownerID, topicID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND topic_id = ? AND is_deleted = ?", ownerID, topicID, false).
		Order("date ASC, start_time ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, storageErr("list tasks by topic", err)
	}
	return tasks, nil
}

// ListByOwner returns the owner's tasks, tombstones included when
// includeDeleted is set. Used by sync, which must push tombstones.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string, includeDeleted bool) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	var tasks []model.Task
	if err := q.Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, storageErr("list tasks", err)
	}
	return tasks, nil
}

// FindDuplicate looks up a live task with the same dedup tuple the
// materializer keys occurrences on. Returns nil when no row matches.
func (r *TaskRepository) FindDuplicate(ctx context.Context, ownerID, title, startTime, endTime, date string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND title = ? AND start_time = ? AND end_time = ? AND date = ? AND is_deleted = ?",
			ownerID, title, startTime, endTime, date, false).
		First(&task).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, storageErr("find duplicate task", err)
	}
}

func (r *TaskRepository) SoftDelete(ctx context.Context, ownerID, taskID string) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND id = ? AND is_deleted = ?", ownerID, taskID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return storageErr("soft delete task", res.Error)
	}
	if res.RowsAffected == 0 {
		return &model.NotFoundError{Entity: "task", ID: taskID}
	}
	return nil
}

// CountByOwner counts all of the owner's rows, tombstones included.
func (r *TaskRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ?", ownerID).
		Count(&n).Error
	if err != nil {
		return 0, storageErr("count tasks", err)
	}
	return n, nil
}
