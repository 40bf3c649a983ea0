package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"topic-planner/internal/model"
	"topic-planner/internal/service"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Local-first task and topic planner",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newTopicCmd(a), newTaskCmd(a), newSyncCmd(a), newServeCmd(a))
	return root
}

func newTopicCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "topic", Short: "Manage topics"}

	var input service.TopicInput
	var category string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.owner()
			if err != nil {
				return err
			}
			if category != "" {
				input.CategoryID = &category
			}
			topic, err := a.topics.CreateTopic(cmd.Context(), owner, input)
			if err != nil {
				return err
			}
			fmt.Printf("created topic %s\n", topic.ID)
			return nil
		},
	}
	add.Flags().StringVar(&input.Title, "title", "", "topic title (required)")
	add.Flags().StringVar(&input.Description, "desc", "", "description")
	add.Flags().StringVar(&category, "category", "", "category id")
	add.Flags().BoolVar(&input.IsPublic, "public", false, "make the topic public")
	add.Flags().StringVar(&input.Status, "status", "", "free-form status")

	list := &cobra.Command{
		Use:   "list",
		Short: "List live topics with task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.owner()
			if err != nil {
				return err
			}
			printTopics(a.queries.Topics(cmd.Context(), owner))
			return nil
		},
	}

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search topics by title substring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.owner()
			if err != nil {
				return err
			}
			printTopics(a.queries.SearchTopics(cmd.Context(), owner, args[0]))
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Soft-delete a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.owner()
			if err != nil {
				return err
			}
			return a.topics.DeleteTopic(cmd.Context(), owner, args[0])
		},
	}

	cmd.AddCommand(add, list, search, rm)
	return cmd
}

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "task", Short: "Manage tasks"}

	var input service.TaskInput
	var topicID, goalID, remind string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.owner()
			if err != nil {
				return err
			}
			if topicID != "" {
				input.TopicID = &topicID
			}
			if goalID != "" {
				input.GoalID = &goalID
			}
			if remind != "" {
				input.ReminderDays = strings.Split(remind, ",")
			}
			task, err := a.tasks.CreateTask(cmd.Context(), owner, input)
			if err != nil {
				return err
			}
			fmt.Printf("created task %s\n", task.ID)
			return nil
		},
	}
	add.Flags().StringVar(&input.Title, "title", "", "task title (required)")
	add.Flags().StringVar(&input.Description, "desc", "", "description")
	add.Flags().StringVar(&input.Date, "date", "", "date, YYYY-MM-DD (required)")
	add.Flags().StringVar(&input.StartTime, "start", "", "start time, HH:MM (required)")
	add.Flags().StringVar(&input.EndTime, "end", "", "end time, HH:MM (required)")
	add.Flags().StringVar(&topicID, "topic", "", "topic id")
	add.Flags().StringVar(&goalID, "goal", "", "goal id")
	add.Flags().StringVar(&remind, "remind", "", "comma-separated weekdays to repeat on")

	var date, status, byTopic string
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.owner()
			if err != nil {
				return err
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			var st *model.TaskStatus
			if status != "" {
				v := model.TaskStatus(strings.ToUpper(status))
				st = &v
			}
			var tp *string
			if byTopic != "" {
				tp = &byTopic
			}
			printTasks(a.queries.TasksForDate(cmd.Context(), owner, date, st, tp))
			return nil
		},
	}
	list.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD (default today)")
	list.Flags().StringVar(&status, "status", "", "filter by status")
	list.Flags().StringVar(&byTopic, "topic", "", "filter by topic id")

	done := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.owner()
			if err != nil {
				return err
			}
			_, err = a.tasks.CompleteTask(cmd.Context(), owner, args[0])
			return err
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Soft-delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.owner()
			if err != nil {
				return err
			}
			return a.tasks.DeleteTask(cmd.Context(), owner, args[0])
		},
	}

	cmd.AddCommand(add, list, done, rm)
	return cmd
}

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push local state to the remote and adopt its merge",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.owner()
			if err != nil {
				return err
			}
			if a.sync == nil {
				return fmt.Errorf("SYNC_URL is not configured")
			}
			report, err := a.sync.SyncNow(cmd.Context(), owner)
			if err != nil {
				return err
			}
			fmt.Printf("pushed %d topics, %d tasks; adopted %d topics, %d tasks\n",
				report.TopicsPushed, report.TasksPushed, report.TopicsAdopted, report.TasksAdopted)
			return nil
		},
	}
}

// newServeCmd runs the background sync scheduler until interrupted.
func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run periodic background sync",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.owner()
			if err != nil {
				return err
			}
			if a.sync == nil {
				return fmt.Errorf("SYNC_URL is not configured")
			}
			if a.cfg.SyncInterval <= 0 && a.cfg.SyncDailyAt == "" {
				return fmt.Errorf("set SYNC_INTERVAL_HOURS or SYNC_DAILY_AT")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			job := func() {
				jobCtx, cancel := context.WithTimeout(context.Background(), a.cfg.SyncTimeout+10*time.Second)
				defer cancel()
				if _, err := a.sync.SyncNow(jobCtx, owner); err != nil && !errors.Is(err, model.ErrSyncInProgress) {
					log.Printf("sync: %v", err)
				}
			}

			scheduler := service.NewSchedulerService(time.Local)
			if a.cfg.SyncInterval > 0 {
				if _, err := scheduler.ScheduleInterval(a.cfg.SyncInterval, job); err != nil {
					return fmt.Errorf("schedule sync: %w", err)
				}
			}
			if a.cfg.SyncDailyAt != "" {
				if _, err := scheduler.ScheduleDaily(a.cfg.SyncDailyAt, job); err != nil {
					return fmt.Errorf("schedule daily sync: %w", err)
				}
			}
			scheduler.Start()
			defer scheduler.Stop()

			log.Println("Planner sync scheduler started.")
			<-ctx.Done()
			log.Println("Shutdown complete.")
			return nil
		},
	}
}

func printTopics(topics []model.TopicWithCount) {
	if len(topics) == 0 {
		fmt.Println("no topics")
		return
	}
	for _, t := range topics {
		fmt.Printf("%s  %-30s  %d tasks\n", t.ID, t.Title, t.TaskCount)
	}
}

func printTasks(tasks []model.TaskDetail) {
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return
	}
	for _, t := range tasks {
		topic := ""
		if t.TopicTitle != nil {
			topic = " [" + *t.TopicTitle + "]"
		}
		fmt.Printf("%s  %s-%s  %-9s  %s%s\n", t.ID, t.StartTime, t.EndTime, t.Status, t.Title, topic)
	}
}
