package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/intellixel001/suvashpanel/internal/models"
	"github.com/intellixel001/suvashpanel/internal/service"
	"github.com/intellixel001/suvashpanel/pkg/response"
)

// ExamHandler exposes exams, their options and their notice, syllabus and results.
type ExamHandler struct {
	exams  *service.ExamService
	export *service.ExportService
	views  *service.Views
}

// NewExamHandler constructs the handler.
func NewExamHandler(exams *service.ExamService, export *service.ExportService, views *service.Views) *ExamHandler {
	return &ExamHandler{exams: exams, export: export, views: views}
}

type resultsRequest struct {
	Answers []models.ResultAnswer `json:"answers"`
}

// List godoc
// @Summary List exams
// @Description Class is scoped to position and subject to class; stale selections are cleared and echoed in meta.filter
// @Tags Exams
// @Produce json
// @Param search query string false "Name contains"
// @Param status query string false "active or finished"
// @Param position query string false "Academic, Admission or Job"
// @Param class query string false "Class option id"
// @Param subject query string false "Subject option id"
// @Success 200 {object} response.Envelope
// @Router /api/exams [get]
func (h *ExamHandler) List(c *gin.Context) {
	exams, view, f, ok := h.filtered(c)
	if !ok {
		return
	}
	respondList(c, view, len(exams), len(view), map[string]interface{}{"filter": f})
}

// Export godoc
// @Summary Export the filtered exam list
// @Tags Exams
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /api/exams/export [get]
func (h *ExamHandler) Export(c *gin.Context) {
	_, view, _, ok := h.filtered(c)
	if !ok {
		return
	}
	file, err := h.export.Exams(view, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// filtered loads exams and options and applies the scoped filter.
func (h *ExamHandler) filtered(c *gin.Context) ([]models.Exam, []models.Exam, models.ExamFilter, bool) {
	var f models.ExamFilter
	if !bindQuery(c, &f) {
		return nil, nil, f, false
	}
	ctx := c.Request.Context()
	options, err := h.exams.Options(ctx)
	if err != nil {
		response.Error(c, err)
		return nil, nil, f, false
	}
	f = service.WithPosition(f, f.Position, options)

	exams, err := h.exams.List(ctx)
	if err != nil {
		response.Error(c, err)
		return nil, nil, f, false
	}
	return exams, h.views.Exams(exams, f), f, true
}

// Get godoc
// @Summary Exam with questions
// @Tags Exams
// @Produce json
// @Param id path string true "Exam ID"
// @Param search query string false "Question body contains"
// @Success 200 {object} response.Envelope
// @Router /api/exams/{id} [get]
func (h *ExamHandler) Get(c *gin.Context) {
	var qf models.QuestionFilter
	if !bindQuery(c, &qf) {
		return
	}
	detail, err := h.exams.Get(c.Request.Context(), param(c, "id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	total := len(detail.Questions)
	detail.Questions = h.views.Questions(detail.Questions, qf)
	meta := map[string]interface{}{"topics": userFromContext(c).TopicList()}
	respondList(c, detail, total, len(detail.Questions), meta)
}

// Create godoc
// @Summary Create exam
// @Tags Exams
// @Accept json
// @Produce json
// @Param payload body models.Exam true "Exam"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /api/exams [post]
func (h *ExamHandler) Create(c *gin.Context) {
	var exam models.Exam
	if !bindJSON(c, &exam, "exam") {
		return
	}
	created, err := h.exams.Create(c.Request.Context(), exam)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update exam
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body models.Exam true "Exam"
// @Success 200 {object} response.Envelope
// @Router /api/exams/{id} [put]
func (h *ExamHandler) Update(c *gin.Context) {
	var exam models.Exam
	if !bindJSON(c, &exam, "exam") {
		return
	}
	updated, err := h.exams.Update(c.Request.Context(), param(c, "id"), exam)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete exam
// @Tags Exams
// @Param id path string true "Exam ID"
// @Success 204
// @Router /api/exams/{id} [delete]
func (h *ExamHandler) Delete(c *gin.Context) {
	if err := h.exams.Delete(c.Request.Context(), param(c, "id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Notice godoc
// @Summary Replace exam notice
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body models.NoticeRequest true "Notice"
// @Success 200 {object} response.Envelope
// @Router /api/exams/{id}/notice [put]
func (h *ExamHandler) Notice(c *gin.Context) {
	var req models.NoticeRequest
	if !bindJSON(c, &req, "notice") {
		return
	}
	notice, err := h.exams.UpdateNotice(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, models.NoticeRequest{Notice: notice})
}

// Syllabus godoc
// @Summary Replace exam syllabus
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body models.SyllabusRequest true "Syllabus"
// @Success 200 {object} response.Envelope
// @Router /api/exams/{id}/syllabus [put]
func (h *ExamHandler) Syllabus(c *gin.Context) {
	var req models.SyllabusRequest
	if !bindJSON(c, &req, "syllabus") {
		return
	}
	syllabus, err := h.exams.UpdateSyllabus(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, models.SyllabusRequest{Syllabus: syllabus})
}

// Results godoc
// @Summary Publish correct answers
// @Description Every question of the exam needs an answer
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body resultsRequest true "Answers"
// @Success 200 {object} response.Envelope
// @Router /api/exams/{id}/results [post]
func (h *ExamHandler) Results(c *gin.Context) {
	var req resultsRequest
	if !bindJSON(c, &req, "results") {
		return
	}
	if err := h.exams.UpdateResults(c.Request.Context(), param(c, "id"), req.Answers); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": len(req.Answers)})
}

// Options godoc
// @Summary Class and subject choices
// @Description Classes of the position and active subjects of the class
// @Tags Exams
// @Produce json
// @Param position query string false "Position"
// @Param class query string false "Class option id"
// @Success 200 {object} response.Envelope
// @Router /api/exam-options [get]
func (h *ExamHandler) Options(c *gin.Context) {
	options, err := h.exams.Options(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	position := strings.TrimSpace(c.Query("position"))
	f := service.WithPosition(models.ExamFilter{Class: strings.TrimSpace(c.Query("class"))}, position, options)
	response.JSON(c, http.StatusOK, gin.H{
		"positions": models.Positions,
		"classes":   service.ClassesFor(options, position),
		"subjects":  service.SubjectsFor(options, f.Class),
	})
}
