package model

import "time"

// TaskStatus enumerates the lifecycle states a task can be in.
type TaskStatus string

const (
	StatusPending   TaskStatus = "PENDING"
	StatusCompleted TaskStatus = "COMPLETED"
	StatusCancelled TaskStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the enumerated task statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Task represents a single scheduled item in the planner.
//
// StartTime/EndTime are HH:MM strings and Date is YYYY-MM-DD; both are
// validated by format at the service boundary and stored as-is. ParentID
// links a materialized occurrence back to the task whose recurrence rule
// generated it. Timestamps are set explicitly by the service clock;
// gorm's auto tracking stays off so sync adoption keeps the remote's
// values.
type Task struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	OwnerID      string     `gorm:"column:user_id;index:idx_tasks_owner_date" json:"ownerId"`
	TopicID      *string    `gorm:"index" json:"topicId"`
	GoalID       *string    `json:"goalId"`
	ParentID     *string    `json:"parentId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	StartTime    string     `json:"startTime"`
	EndTime      string     `json:"endTime"`
	Date         string     `gorm:"index:idx_tasks_owner_date" json:"date"`
	Status       TaskStatus `gorm:"type:text;check:status IN ('PENDING','COMPLETED','CANCELLED')" json:"status"`
	ReminderDays WeekdaySet `json:"reminderDays"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime:false" json:"updatedAt"`
	IsDeleted    bool       `gorm:"default:false;index" json:"isDeleted"`
}

// TaskDetail is a Task joined with its owning live topic's title and
// category. TopicTitle is nil when the task has no topic or the topic
// has been soft-deleted.
type TaskDetail struct {
	Task          `gorm:"embedded"`
	TopicTitle    *string `json:"topicTitle"`
	TopicCategory *string `json:"topicCategory"`
}
