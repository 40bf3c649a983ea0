package main

import (
	"fmt"
	"log"
	"os"

	"topic-planner/internal/config"
	"topic-planner/internal/repository"
	"topic-planner/internal/service"
	"topic-planner/internal/syncclient"
)

// app bundles the wired services behind the CLI commands.
type app struct {
	cfg     config.Config
	topics  *service.TopicService
	tasks   *service.TaskService
	queries *service.QueryService
	sync    *service.SyncService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := repository.Default(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	topicRepo := repository.NewTopicRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	clock := service.SystemClock()
	lock := service.NewStoreLock()

	recurrence := service.NewRecurrenceService(taskRepo, clock)

	a := &app{
		cfg:     cfg,
		topics:  service.NewTopicService(topicRepo, clock, lock),
		tasks:   service.NewTaskService(taskRepo, topicRepo, recurrence, clock, lock),
		queries: service.NewQueryService(topicRepo, taskRepo),
	}

	if cfg.SyncURL != "" {
		client := syncclient.New(cfg.SyncURL, cfg.SyncToken, cfg.SyncTimeout)
		a.sync = service.NewSyncService(topicRepo, taskRepo, client)
	}

	return a, nil
}

// owner returns the configured owner id; every store and sync
// operation is scoped by it.
func (a *app) owner() (string, error) {
	if a.cfg.OwnerID == "" {
		return "", fmt.Errorf("OWNER_ID is not set")
	}
	return a.cfg.OwnerID, nil
}

func main() {
	a, err := newApp()
	if err != nil {
		log.Fatalf("planner: %v", err)
	}

	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
