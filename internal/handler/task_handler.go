package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/intellixel001/suvashpanel/internal/models"
	"github.com/intellixel001/suvashpanel/internal/service"
	"github.com/intellixel001/suvashpanel/internal/store"
	"github.com/intellixel001/suvashpanel/pkg/response"
)

// TaskHandler serves the operator's task list.
type TaskHandler struct {
	tasks   *store.TaskStore
	service *service.TaskService
	views   *service.Views
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(tasks *store.TaskStore, svc *service.TaskService, views *service.Views) *TaskHandler {
	return &TaskHandler{tasks: tasks, service: svc, views: views}
}

// List godoc
// @Summary List my tasks
// @Description Filtered by calendar day (YYYY-MM-DD), priority and status, newest first
// @Tags Tasks
// @Produce json
// @Param date query string false "Calendar day"
// @Param priority query string false "low, medium or high"
// @Param status query string false "pending, in_progress, declined or completed"
// @Success 200 {object} response.Envelope
// @Router /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var f models.TaskFilter
	if !bindQuery(c, &f) {
		return
	}
	state := h.tasks.GetState()
	if state.Status == store.StatusIdle {
		var err error
		if state, err = h.tasks.Refresh(c.Request.Context()); err != nil {
			response.Error(c, err)
			return
		}
	}
	h.respond(c, state, f)
}

// Refresh godoc
// @Summary Refetch my tasks
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/tasks/refresh [post]
func (h *TaskHandler) Refresh(c *gin.Context) {
	var f models.TaskFilter
	if !bindQuery(c, &f) {
		return
	}
	state, err := h.tasks.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, state, f)
}

// Submit godoc
// @Summary Submit a task
// @Description The list is refetched afterwards
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Router /api/tasks/{id}/submit [put]
func (h *TaskHandler) Submit(c *gin.Context) {
	state, err := h.service.Submit(c.Request.Context(), param(c, "id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, state, models.TaskFilter{})
}

func (h *TaskHandler) respond(c *gin.Context, state store.TaskState, f models.TaskFilter) {
	view := h.views.Tasks(state.Tasks, f)
	extra := map[string]interface{}{"status": state.Status}
	if state.Error != "" {
		extra["error"] = state.Error
	}
	respondList(c, view, len(state.Tasks), len(view), extra)
}
