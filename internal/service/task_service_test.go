package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellixel001/suvashpanel/internal/store"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

func TestTaskSubmitRefetchesTasks(t *testing.T) {
	api := newMockAPI().on("GET", "/staff/get-mytask", `{"myTasks":[{"_id":"t1","message":"Review exam","status":"completed"}]}`)
	tasks := store.NewTaskStore(api, nil)
	svc := NewTaskService(api, tasks, nil)

	state, err := svc.Submit(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusReady, state.Status)
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, []string{"PUT /staff/task/submit/t1", "GET /staff/get-mytask"}, api.paths())
}

func TestTaskSubmitFailureSkipsRefetch(t *testing.T) {
	api := newMockAPI().fail("PUT", "/staff/task/submit/t1", appErrors.ErrForbidden)
	svc := NewTaskService(api, store.NewTaskStore(api, nil), nil)

	_, err := svc.Submit(context.Background(), "t1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden.Code))
	assert.Len(t, api.calls, 1)
}

func TestTaskSubmitToleratesRefetchFailure(t *testing.T) {
	api := newMockAPI().fail("GET", "/staff/get-mytask", appErrors.ErrServer)
	svc := NewTaskService(api, store.NewTaskStore(api, nil), nil)

	state, err := svc.Submit(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusError, state.Status)
}
