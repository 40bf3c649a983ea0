// Package syncclient talks to the remote sync authority over HTTP.
//
// The remote speaks snake_case and encodes reminder days as arrays of
// canonical day names; this package owns the translation between that
// wire shape and the internal models, so nothing outside it ever sees
// remote field naming.
package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"topic-planner/internal/model"
)

// Client performs the batched push-then-adopt round trip.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// New creates a client for the given endpoint. The timeout bounds the
// whole round trip; storage never waits on the network.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type wireTopic struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"category_id"`
	IsPublic    bool      `json:"is_public"`
	Status      string    `json:"status"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      string    `json:"user_id"`
	IsDeleted   bool      `json:"is_deleted"`
}

type wireTask struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	ReminderDays []string  `json:"reminder_days"`
	TopicID      *string   `json:"topic_id"`
	GoalID       *string   `json:"goal_id"`
	ParentID     *string   `json:"parent_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserID       string    `json:"user_id"`
	IsDeleted    bool      `json:"is_deleted"`
}

type syncRequest struct {
	Topics []wireTopic `json:"topics"`
	Tasks  []wireTask  `json:"tasks"`
}

type syncResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Topics []wireTopic `json:"topics"`
		Tasks  []wireTask  `json:"tasks"`
	} `json:"data"`
}

// Payload is the remote's canonical merged state, translated back to
// internal models.
type Payload struct {
	Topics []model.Topic
	Tasks  []model.Task
}

// Push sends the full local entity set and returns the remote's merged
// arrays. Any transport or remote failure comes back as a RemoteError
// carrying the remote's payload unmodified; the caller applies nothing
// in that case.
func (c *Client) Push(ctx context.Context, topics []model.Topic, tasks []model.Task) (*Payload, error) {
	req := syncRequest{
		Topics: make([]wireTopic, 0, len(topics)),
		Tasks:  make([]wireTask, 0, len(tasks)),
	}
	for _, t := range topics {
		req.Topics = append(req.Topics, toWireTopic(t))
	}
	for _, t := range tasks {
		req.Tasks = append(req.Tasks, toWireTask(t))
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal sync request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build sync request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &model.RemoteError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.RemoteError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &model.RemoteError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var parsed syncResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &model.RemoteError{Status: resp.StatusCode, Body: string(respBody), Err: err}
	}
	if !parsed.Success {
		return nil, &model.RemoteError{Status: resp.StatusCode, Body: string(respBody)}
	}

	out := &Payload{
		Topics: make([]model.Topic, 0, len(parsed.Data.Topics)),
		Tasks:  make([]model.Task, 0, len(parsed.Data.Tasks)),
	}
	for _, t := range parsed.Data.Topics {
		out.Topics = append(out.Topics, fromWireTopic(t))
	}
	for _, t := range parsed.Data.Tasks {
		out.Tasks = append(out.Tasks, fromWireTask(t))
	}
	return out, nil
}

func toWireTopic(t model.Topic) wireTopic {
	return wireTopic{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		IsPublic:    t.IsPublic,
		Status:      t.Status,
		Likes:       t.Likes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		UserID:      t.OwnerID,
		IsDeleted:   t.IsDeleted,
	}
}

func fromWireTopic(t wireTopic) model.Topic {
	return model.Topic{
		ID:          t.ID,
		OwnerID:     t.UserID,
		Title:       t.Title,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		IsPublic:    t.IsPublic,
		Status:      t.Status,
		Likes:       t.Likes,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		IsDeleted:   t.IsDeleted,
	}
}

func toWireTask(t model.Task) wireTask {
	return wireTask{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		Date:         t.Date,
		Status:       string(t.Status),
		ReminderDays: t.ReminderDays.Names(),
		TopicID:      t.TopicID,
		GoalID:       t.GoalID,
		ParentID:     t.ParentID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		UserID:       t.OwnerID,
		IsDeleted:    t.IsDeleted,
	}
}

func fromWireTask(t wireTask) model.Task {
	return model.Task{
		ID:           t.ID,
		OwnerID:      t.UserID,
		TopicID:      t.TopicID,
		GoalID:       t.GoalID,
		ParentID:     t.ParentID,
		Title:        t.Title,
		Description:  t.Description,
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		Date:         t.Date,
		Status:       model.TaskStatus(t.Status),
		ReminderDays: model.ParseWeekdaySet(t.ReminderDays),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		IsDeleted:    t.IsDeleted,
	}
}
