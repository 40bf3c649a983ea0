package service

import (
	"context"
	"log"

	"topic-planner/internal/model"
	"topic-planner/internal/repository"
)

// QueryService exposes the read-only projections consumed by the UI
// layer. It never mutates entity state.
//
// List reads degrade to empty results on storage failure so a flaky
// disk turns into an empty screen rather than a crash; the failure is
// still logged.
type QueryService struct {
	topicRepo *repository.TopicRepository
	taskRepo  *repository.TaskRepository
}

func NewQueryService(topicRepo *repository.TopicRepository, taskRepo *repository.TaskRepository) *QueryService {
	return &QueryService{topicRepo: topicRepo, taskRepo: taskRepo}
}

// TasksForDate returns the joined task+topic view for one date,
// optionally narrowed by status and topic.
func (s *QueryService) TasksForDate(ctx context.Context, ownerID, date string, status *model.TaskStatus, topicID *string) []model.TaskDetail {
	details, err := s.taskRepo.ListByDate(ctx, ownerID, date, status, topicID)
	if err != nil {
		log.Printf("query: tasks for %s: %v", date, err)
		return nil
	}
	return details
}

// Topics returns the owner's live topics with live task counts.
func (s *QueryService) Topics(ctx context.Context, ownerID string) []model.TopicWithCount {
	topics, err := s.topicRepo.ListWithTaskCounts(ctx, ownerID)
	if err != nil {
		log.Printf("query: topics: %v", err)
		return nil
	}
	return topics
}

// SearchTopics returns live topics whose title contains query,
// case-insensitively, with live task counts.
func (s *QueryService) SearchTopics(ctx context.Context, ownerID, query string) []model.TopicWithCount {
	topics, err := s.topicRepo.Search(ctx, ownerID, query)
	if err != nil {
		log.Printf("query: search topics %q: %v", query, err)
		return nil
	}
	return topics
}

// TasksByTopic returns the live tasks attached to one topic.
func (s *QueryService) TasksByTopic(ctx context.Context, ownerID, topicID string) []model.Task {
	tasks, err := s.taskRepo.ListByTopic(ctx, ownerID, topicID)
	if err != nil {
		log.Printf("query: tasks by topic %s: %v", topicID, err)
		return nil
	}
	return tasks
}
