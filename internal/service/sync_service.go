package service

import (
	"context"
	"log"
	"sync"

	"topic-planner/internal/model"
	"topic-planner/internal/repository"
	"topic-planner/internal/syncclient"
)

// SyncReport summarizes one completed sync round trip.
type SyncReport struct {
	TopicsPushed  int
	TasksPushed   int
	TopicsAdopted int
	TasksAdopted  int
}

// SyncService reconciles the local store with the remote authority
// using push-then-adopt: the full local entity set, tombstones
// included, goes out in one batch, and the remote's merged response is
// adopted wholesale through the store's upsert path. The remote is
// always authoritative; no local merge happens here.
type SyncService struct {
	topicRepo *repository.TopicRepository
	taskRepo  *repository.TaskRepository
	client    *syncclient.Client

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewSyncService(topicRepo *repository.TopicRepository, taskRepo *repository.TaskRepository, client *syncclient.Client) *SyncService {
	return &SyncService{
		topicRepo: topicRepo,
		taskRepo:  taskRepo,
		client:    client,
		inFlight:  make(map[string]bool),
	}
}

// SyncNow runs one sync for the owner. At most one sync per owner may
// be in flight; a concurrent call returns ErrSyncInProgress without
// touching the network. A failed round trip leaves the local store
// untouched.
func (s *SyncService) SyncNow(ctx context.Context, ownerID string) (*SyncReport, error) {
	s.mu.Lock()
	if s.inFlight[ownerID] {
		s.mu.Unlock()
		return nil, model.ErrSyncInProgress
	}
	s.inFlight[ownerID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, ownerID)
		s.mu.Unlock()
	}()

	topics, err := s.topicRepo.ListByOwner(ctx, ownerID, true)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID, true)
	if err != nil {
		return nil, err
	}

	payload, err := s.client.Push(ctx, topics, tasks)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{TopicsPushed: len(topics), TasksPushed: len(tasks)}

	// Adoption reuses the ordinary create path, which upserts by id.
	// Row failures are logged and skipped so one bad row cannot wedge
	// the rest of the remote state; the first failure is still
	// surfaced to the caller.
	var firstErr error
	for i := range payload.Topics {
		if err := s.topicRepo.Create(ctx, &payload.Topics[i]); err != nil {
			log.Printf("sync: adopt topic %s: %v", payload.Topics[i].ID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		report.TopicsAdopted++
	}
	for i := range payload.Tasks {
		if err := s.taskRepo.Create(ctx, &payload.Tasks[i]); err != nil {
			log.Printf("sync: adopt task %s: %v", payload.Tasks[i].ID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		report.TasksAdopted++
	}
	if firstErr != nil {
		return report, firstErr
	}
	return report, nil
}
