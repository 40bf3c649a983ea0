package model

import "time"

// Topic groups tasks by area (work, health, study, etc.).
type Topic struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	OwnerID     string    `gorm:"column:user_id;index" json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"categoryId"`
	IsPublic    bool      `gorm:"default:false" json:"isPublic"`
	Status      string    `json:"status"`
	Likes       int       `gorm:"default:0" json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
	IsDeleted   bool      `gorm:"default:false;index" json:"isDeleted"`
}

// TopicWithCount is a Topic annotated with the number of live tasks
// attached to it. Produced by list/search queries, never stored.
type TopicWithCount struct {
	Topic     `gorm:"embedded"`
	TaskCount int64 `json:"taskCount"`
}
