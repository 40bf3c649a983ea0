package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"topic-planner/internal/model"
	"topic-planner/internal/repository"
)

// TopicInput represents data required to create or update a topic.
type TopicInput struct {
	Title       string
	Description string
	CategoryID  *string
	IsPublic    bool
	Status      string
}

// TopicService wraps topic-related business logic. Mutating calls are
// serialized through the shared store lock so no two writes on the
// same store interleave mid-operation.
type TopicService struct {
	topicRepo *repository.TopicRepository
	clock     Clock
	lock      *StoreLock
}

func NewTopicService(topicRepo *repository.TopicRepository, clock Clock, lock *StoreLock) *TopicService {
	return &TopicService{topicRepo: topicRepo, clock: clock, lock: lock}
}

func (s *TopicService) CreateTopic(ctx context.Context, ownerID string, input TopicInput) (*model.Topic, error) {
	if err := validateTopicInput(ownerID, input.Title); err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	now := s.clock.Now()
	topic := model.Topic{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		CategoryID:  input.CategoryID,
		IsPublic:    input.IsPublic,
		Status:      input.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.topicRepo.Create(ctx, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// UpdateTopic mutates an existing topic in place. A missing id is a
// NotFoundError, never a silent no-op.
func (s *TopicService) UpdateTopic(ctx context.Context, ownerID, topicID string, input TopicInput) (*model.Topic, error) {
	if err := validateTopicInput(ownerID, input.Title); err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	topic, err := s.topicRepo.FindByID(ctx, ownerID, topicID)
	if err != nil {
		return nil, err
	}

	topic.Title = strings.TrimSpace(input.Title)
	topic.Description = input.Description
	topic.CategoryID = input.CategoryID
	topic.IsPublic = input.IsPublic
	topic.Status = input.Status
	topic.UpdatedAt = s.clock.Now()

	if err := s.topicRepo.Save(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) GetTopic(ctx context.Context, ownerID, topicID string) (*model.Topic, error) {
	return s.topicRepo.FindByID(ctx, ownerID, topicID)
}

// DeleteTopic tombstones the topic; tasks referencing it keep living
// but lose the reference in the same operation.
func (s *TopicService) DeleteTopic(ctx context.Context, ownerID, topicID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.topicRepo.SoftDelete(ctx, ownerID, topicID)
}

func validateTopicInput(ownerID, title string) error {
	if ownerID == "" {
		return &model.ValidationError{Field: "ownerId", Reason: "required"}
	}
	if strings.TrimSpace(title) == "" {
		return &model.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}
