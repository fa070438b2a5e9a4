package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/apiclient"
	"github.com/intellixel001/suvashpanel/internal/models"
)

const (
	myTasksPath    = "/staff/get-mytask"
	tasksFailedMsg = "Failed to fetch tasks"
)

// TaskState is the operator's task list and the status of its last fetch.
type TaskState struct {
	Tasks  []models.Task `json:"tasks"`
	Status Status        `json:"status"`
	Error  string        `json:"error,omitempty"`
}

// TaskAction drives ReduceTasks.
type TaskAction struct {
	Kind  Kind
	Tasks []models.Task
	Err   string
}

// ReduceTasks is the task list reducer.
func ReduceTasks(state TaskState, action TaskAction) TaskState {
	switch action.Kind {
	case KindPending:
		state.Status = StatusLoading
		state.Error = ""
	case KindFulfilled:
		state.Tasks = action.Tasks
		state.Status = StatusReady
		state.Error = ""
	case KindRejected:
		state.Status = StatusError
		state.Error = action.Err
	}
	return state
}

// TaskStore holds the tasks assigned to the operator.
type TaskStore struct {
	*Store[TaskState, TaskAction]
	api    Getter
	logger *zap.Logger
}

// NewTaskStore builds an idle, empty TaskStore.
func NewTaskStore(api Getter, logger *zap.Logger) *TaskStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskStore{
		Store:  New(TaskState{Tasks: []models.Task{}, Status: StatusIdle}, ReduceTasks),
		api:    api,
		logger: logger,
	}
}

// Refresh reloads the task list, replacing it wholesale on success.
func (s *TaskStore) Refresh(ctx context.Context) (TaskState, error) {
	s.Dispatch(TaskAction{Kind: KindPending})

	payload, err := s.api.Get(ctx, myTasksPath)
	if err == nil {
		tasks := []models.Task{}
		if list := payload.Field("myTasks"); list != nil {
			err = list.Decode(&tasks)
		}
		if err == nil {
			return s.Dispatch(TaskAction{Kind: KindFulfilled, Tasks: tasks}), nil
		}
	}

	msg := apiclient.MessageOr(err, tasksFailedMsg)
	s.logger.Warn("task refresh failed", zap.String("message", msg), zap.Error(err))
	return s.Dispatch(TaskAction{Kind: KindRejected, Err: msg}), err
}
