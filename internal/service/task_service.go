package service

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/store"
)

const taskSubmitPath = "/staff/task/submit/"

type taskRefresher interface {
	Refresh(ctx context.Context) (store.TaskState, error)
}

// TaskService submits tasks and keeps the task store current.
type TaskService struct {
	api    apiCaller
	tasks  taskRefresher
	logger *zap.Logger
}

// NewTaskService constructs a TaskService.
func NewTaskService(api apiCaller, tasks taskRefresher, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{api: api, tasks: tasks, logger: logger}
}

// Submit marks task id as submitted, then refetches the task list. A failed
// refetch is logged and does not fail the submission.
func (s *TaskService) Submit(ctx context.Context, id string) (store.TaskState, error) {
	if err := requireID(id, "task id"); err != nil {
		return store.TaskState{}, err
	}
	if _, err := s.api.Put(ctx, taskSubmitPath+url.PathEscape(id), nil); err != nil {
		return store.TaskState{}, err
	}
	state, err := s.tasks.Refresh(ctx)
	if err != nil {
		s.logger.Warn("task refetch after submit failed", zap.String("task_id", id), zap.Error(err))
	}
	return state, nil
}
