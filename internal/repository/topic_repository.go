package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"topic-planner/internal/model"
)

// TopicRepository handles CRUD for topics.
type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// Create inserts the topic, or overwrites the stored row when the id
// already exists. Sync adoption relies on this upsert behavior.
func (r *TopicRepository) Create(ctx context.Context, topic *model.Topic) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(topic).Error
	if err != nil {
		return storageErr("create topic", err)
	}
	return nil
}

// Save persists field changes of an already-loaded topic.
func (r *TopicRepository) Save(ctx context.Context, topic *model.Topic) error {
	if err := r.db.WithContext(ctx).Save(topic).Error; err != nil {
		return storageErr("save topic", err)
	}
	return nil
}

func (r *TopicRepository) FindByID(ctx context.Context, ownerID, topicID string) (*model.Topic, error) {
	var topic model.Topic
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, topicID).
		First(&topic).Error
	switch {
	case err == nil:
		return &topic, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, &model.NotFoundError{Entity: "topic", ID: topicID}
	default:
		return nil, storageErr("find topic", err)
	}
}

// ListByOwner returns the owner's topics, tombstones included when
// includeDeleted is set. Used by sync, which must push tombstones.
func (r *TopicRepository) ListByOwner(ctx context.Context, ownerID string, includeDeleted bool) ([]model.Topic, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	var topics []model.Topic
	if err := q.Order("created_at ASC").Find(&topics).Error; err != nil {
		return nil, storageErr("list topics", err)
	}
	return topics, nil
}

// ListWithTaskCounts returns the owner's live topics, each annotated
// with its live task count.
func (r *TopicRepository) ListWithTaskCounts(ctx context.Context, ownerID string) ([]model.TopicWithCount, error) {
	return r.listCounted(ctx, ownerID, "")
}

// Search returns live topics whose title contains query,
// case-insensitively, with the same live task count aggregate.
func (r *TopicRepository) Search(ctx context.Context, ownerID, query string) ([]model.TopicWithCount, error) {
	return r.listCounted(ctx, ownerID, query)
}

func (r *TopicRepository) listCounted(ctx context.Context, ownerID, query string) ([]model.TopicWithCount, error) {
	q := r.db.WithContext(ctx).Model(&model.Topic{}).
		Select("topics.*, COUNT(tasks.id) AS task_count").
		Joins("LEFT JOIN tasks ON tasks.topic_id = topics.id AND tasks.is_deleted = ?", false).
		Where("topics.user_id = ? AND topics.is_deleted = ?", ownerID, false)
	if query != "" {
		q = q.Where("LOWER(topics.title) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	var rows []model.TopicWithCount
	err := q.Group("topics.id").Order("topics.created_at ASC").Scan(&rows).Error
	if err != nil {
		return nil, storageErr("list topics with counts", err)
	}
	return rows, nil
}

// SoftDelete tombstones the topic and clears topic_id on every task
// referencing it, in one transaction.
func (r *TopicRepository) SoftDelete(ctx context.Context, ownerID, topicID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Topic{}).
			Where("user_id = ? AND id = ? AND is_deleted = ?", ownerID, topicID, false).
			Update("is_deleted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &model.NotFoundError{Entity: "topic", ID: topicID}
		}
		return tx.Model(&model.Task{}).
			Where("user_id = ? AND topic_id = ?", ownerID, topicID).
			Update("topic_id", nil).Error
	})
	if err == nil || model.IsNotFound(err) {
		return err
	}
	return storageErr("soft delete topic", err)
}
