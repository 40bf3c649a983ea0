package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"topic-planner/internal/model"
	"topic-planner/internal/repository"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// TaskInput represents data required to create or update a task.
// ReminderDays accepts locale day names; unknown names are dropped.
type TaskInput struct {
	Title        string
	Description  string
	StartTime    string
	EndTime      string
	Date         string
	Status       model.TaskStatus
	ReminderDays []string
	TopicID      *string
	GoalID       *string
}

// TaskService wraps task-related business logic. Mutating calls are
// serialized through the shared store lock so no two writes on the
// same store interleave mid-operation; in particular a topic-reference
// check can never race a topic soft-delete cascade.
type TaskService struct {
	taskRepo   *repository.TaskRepository
	topicRepo  *repository.TopicRepository
	recurrence *RecurrenceService
	clock      Clock
	lock       *StoreLock
}

func NewTaskService(taskRepo *repository.TaskRepository, topicRepo *repository.TopicRepository, recurrence *RecurrenceService, clock Clock, lock *StoreLock) *TaskService {
	return &TaskService{taskRepo: taskRepo, topicRepo: topicRepo, recurrence: recurrence, clock: clock, lock: lock}
}

// CreateTask validates and stores a new task. When the task carries a
// reminder rule, future occurrences are materialized before returning;
// materialization failures never fail the create itself.
func (s *TaskService) CreateTask(ctx context.Context, ownerID string, input TaskInput) (*model.Task, error) {
	status := input.Status
	if status == "" {
		status = model.StatusPending
	}
	if err := validateTaskInput(ownerID, input.Title, input.Date, input.StartTime, input.EndTime, status); err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	topicID, err := s.resolveTopicRef(ctx, ownerID, input.TopicID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	task := model.Task{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		TopicID:      topicID,
		GoalID:       input.GoalID,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Date:         input.Date,
		Status:       status,
		ReminderDays: model.ParseWeekdaySet(input.ReminderDays),
	}
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}

	if !task.ReminderDays.IsEmpty() {
		s.recurrence.Materialize(ctx, &task)
	}
	return &task, nil
}

// UpdateTask mutates an existing task in place. A missing id is a
// NotFoundError, never a silent no-op.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, input TaskInput) (*model.Task, error) {
	status := input.Status
	if status == "" {
		status = model.StatusPending
	}
	if err := validateTaskInput(ownerID, input.Title, input.Date, input.StartTime, input.EndTime, status); err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	detail, err := s.taskRepo.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	task := detail.Task

	topicID, err := s.resolveTopicRef(ctx, ownerID, input.TopicID)
	if err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Description = input.Description
	task.StartTime = input.StartTime
	task.EndTime = input.EndTime
	task.Date = input.Date
	task.Status = status
	task.ReminderDays = model.ParseWeekdaySet(input.ReminderDays)
	task.TopicID = topicID
	task.GoalID = input.GoalID
	task.UpdatedAt = s.clock.Now()

	if err := s.taskRepo.Save(ctx, &task); err != nil {
		return nil, err
	}

	if !task.ReminderDays.IsEmpty() {
		s.recurrence.Materialize(ctx, &task)
	}
	return &task, nil
}

// CompleteTask marks a task COMPLETED through the ordinary update path.
func (s *TaskService) CompleteTask(ctx context.Context, ownerID, taskID string) (*model.Task, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	detail, err := s.taskRepo.FindByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	task := detail.Task
	task.Status = model.StatusCompleted
	task.UpdatedAt = s.clock.Now()
	if err := s.taskRepo.Save(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (*model.TaskDetail, error) {
	return s.taskRepo.FindByID(ctx, ownerID, taskID)
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.taskRepo.SoftDelete(ctx, ownerID, taskID)
}

// resolveTopicRef checks that a topic reference points at a live topic
// of the same owner; anything else is stored as absent rather than as
// a dangling reference.
func (s *TaskService) resolveTopicRef(ctx context.Context, ownerID string, topicID *string) (*string, error) {
	if topicID == nil || *topicID == "" {
		return nil, nil
	}
	topic, err := s.topicRepo.FindByID(ctx, ownerID, *topicID)
	switch {
	case err == nil && !topic.IsDeleted:
		return topicID, nil
	case err == nil || model.IsNotFound(err):
		return nil, nil
	default:
		return nil, err
	}
}

func validateTaskInput(ownerID, title, date, startTime, endTime string, status model.TaskStatus) error {
	if ownerID == "" {
		return &model.ValidationError{Field: "ownerId", Reason: "required"}
	}
	if strings.TrimSpace(title) == "" {
		return &model.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !dateRe.MatchString(date) {
		return &model.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return &model.ValidationError{Field: "date", Reason: "not a calendar date"}
	}
	if !timeRe.MatchString(startTime) {
		return &model.ValidationError{Field: "startTime", Reason: "expected HH:MM"}
	}
	if !timeRe.MatchString(endTime) {
		return &model.ValidationError{Field: "endTime", Reason: "expected HH:MM"}
	}
	if !model.ValidStatus(status) {
		return &model.ValidationError{Field: "status", Reason: "expected PENDING, COMPLETED or CANCELLED"}
	}
	return nil
}
