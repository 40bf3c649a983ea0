package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"topic-planner/internal/model"
	"topic-planner/internal/repository"
)

const dateLayout = "2006-01-02"

// RecurrenceService expands a task's weekly reminder rule into
// concrete future task rows.
//
// The pass is resilient: a failure on one target weekday is logged and
// the remaining weekdays are still processed, so a flaky insert never
// fails the create/update that triggered materialization.
type RecurrenceService struct {
	taskRepo *repository.TaskRepository
	clock    Clock
}

func NewRecurrenceService(taskRepo *repository.TaskRepository, clock Clock) *RecurrenceService {
	return &RecurrenceService{taskRepo: taskRepo, clock: clock}
}

// Materialize generates one occurrence per reminder weekday, skipping
// the anchor's own weekday and any date already occupied by a live
// task with the same title and time window. Re-running it for the same
// source task inserts nothing new. Returns the number of rows created.
func (s *RecurrenceService) Materialize(ctx context.Context, source *model.Task) int {
	if source.ReminderDays.IsEmpty() {
		return 0
	}

	anchor, err := time.Parse(dateLayout, source.Date)
	if err != nil {
		log.Printf("recurrence: task %s has unparseable date %q: %v", source.ID, source.Date, err)
		return 0
	}
	anchorDay := model.ISOWeekday(anchor.Weekday())

	created := 0
	for _, target := range source.ReminderDays.Days() {
		offset := (int(target) - int(anchorDay) + 7) % 7
		if offset == 0 {
			// The rule's day coincides with the anchor itself.
			continue
		}
		date := anchor.AddDate(0, 0, offset).Format(dateLayout)

		dup, err := s.taskRepo.FindDuplicate(ctx, source.OwnerID, source.Title, source.StartTime, source.EndTime, date)
		if err != nil {
			log.Printf("recurrence: dedup check for task %s on %s: %v", source.ID, date, err)
			continue
		}
		if dup != nil {
			continue
		}

		now := s.clock.Now()
		parentID := source.ID
		occurrence := model.Task{
			ID:          uuid.NewString(),
			OwnerID:     source.OwnerID,
			TopicID:     source.TopicID,
			GoalID:      source.GoalID,
			ParentID:    &parentID,
			Title:       source.Title,
			Description: source.Description,
			StartTime:   source.StartTime,
			EndTime:     source.EndTime,
			Date:        date,
			Status:      model.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.taskRepo.Create(ctx, &occurrence); err != nil {
			log.Printf("recurrence: insert occurrence of task %s on %s: %v", source.ID, date, err)
			continue
		}
		created++
	}
	return created
}
