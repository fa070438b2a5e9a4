package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intellixel001/suvashpanel/internal/models"
	"github.com/intellixel001/suvashpanel/internal/service"
	"github.com/intellixel001/suvashpanel/pkg/response"
)

// QuestionHandler edits the questions of an exam.
type QuestionHandler struct {
	questions *service.QuestionService
}

// NewQuestionHandler constructs the handler.
func NewQuestionHandler(questions *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// Create godoc
// @Summary Add question
// @Description Rejected with QUESTION_LOCKED once the exam has started
// @Tags Questions
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body models.Question true "Question"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/exams/{id}/questions [post]
func (h *QuestionHandler) Create(c *gin.Context) {
	var q models.Question
	if !bindJSON(c, &q, "question") {
		return
	}
	created, err := h.questions.Create(c.Request.Context(), param(c, "id"), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update question
// @Tags Questions
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param questionId path string true "Question ID"
// @Param payload body models.Question true "Question"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/exams/{id}/questions/{questionId} [put]
func (h *QuestionHandler) Update(c *gin.Context) {
	var q models.Question
	if !bindJSON(c, &q, "question") {
		return
	}
	updated, err := h.questions.Update(c.Request.Context(), param(c, "id"), param(c, "questionId"), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete question
// @Tags Questions
// @Param id path string true "Exam ID"
// @Param questionId path string true "Question ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /api/exams/{id}/questions/{questionId} [delete]
func (h *QuestionHandler) Delete(c *gin.Context) {
	if err := h.questions.Delete(c.Request.Context(), param(c, "id"), param(c, "questionId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
