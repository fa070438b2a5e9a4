package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/apiclient"
	"github.com/intellixel001/suvashpanel/internal/models"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

const (
	examListPath    = "/staff/exam/get"
	examGetPath     = "/staff/exam/get/"
	examCreatePath  = "/staff/exam/create"
	examUpdatePath  = "/staff/exam/update/"
	examDeletePath  = "/staff/delete-exam/"
	examOptionsPath = "/staff/exam/option/get"
)

// ExamService manages exams and their notice, syllabus and results.
type ExamService struct {
	api         apiCaller
	validator   *validator.Validate
	logger      *zap.Logger
	adminPrefix string
	clock       Clock
}

// NewExamService constructs an ExamService. adminPrefix is prepended to the
// notice, syllabus and result endpoints.
func NewExamService(api apiCaller, validate *validator.Validate, logger *zap.Logger, adminPrefix string, clock Clock) *ExamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &ExamService{api: api, validator: validate, logger: logger, adminPrefix: normalizePrefix(adminPrefix), clock: clock}
}

// List fetches every exam visible to the operator.
func (s *ExamService) List(ctx context.Context) ([]models.Exam, error) {
	payload, err := s.api.Get(ctx, examListPath)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Exam](payload, "data")
}

// Options fetches the class and subject options.
func (s *ExamService) Options(ctx context.Context) ([]models.ExamOption, error) {
	payload, err := s.api.Get(ctx, examOptionsPath)
	if err != nil {
		return nil, err
	}
	return decodeList[models.ExamOption](payload, "data")
}

// Get fetches one exam with its questions.
func (s *ExamService) Get(ctx context.Context, id string) (*models.ExamDetail, error) {
	if err := requireID(id, "exam id"); err != nil {
		return nil, err
	}
	payload, err := s.api.Get(ctx, examGetPath+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	data := payload.Field("data")
	if data == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}
	var exam models.Exam
	if err := data.Decode(&exam); err != nil {
		return nil, err
	}
	questions, err := decodeList[models.Question](payload, "questions")
	if err != nil {
		return nil, err
	}
	return &models.ExamDetail{Exam: &exam, Questions: questions, Editable: s.questionsEditable(&exam)}, nil
}

// Create validates and creates an exam.
func (s *ExamService) Create(ctx context.Context, exam models.Exam) (*models.Exam, error) {
	exam.ID = ""
	if err := s.validateExam(&exam); err != nil {
		return nil, err
	}
	payload, err := s.api.Post(ctx, examCreatePath, exam)
	if err != nil {
		return nil, err
	}
	return decodeExamEcho(payload, exam), nil
}

// Update validates and replaces an exam.
func (s *ExamService) Update(ctx context.Context, id string, exam models.Exam) (*models.Exam, error) {
	if err := requireID(id, "exam id"); err != nil {
		return nil, err
	}
	exam.ID = id
	if err := s.validateExam(&exam); err != nil {
		return nil, err
	}
	payload, err := s.api.Put(ctx, examUpdatePath+url.PathEscape(id), exam)
	if err != nil {
		return nil, err
	}
	return decodeExamEcho(payload, exam), nil
}

// Delete removes an exam.
func (s *ExamService) Delete(ctx context.Context, id string) error {
	if err := requireID(id, "exam id"); err != nil {
		return err
	}
	_, err := s.api.Delete(ctx, examDeletePath+url.PathEscape(id))
	return err
}

// UpdateNotice replaces the notice and returns the stored text.
func (s *ExamService) UpdateNotice(ctx context.Context, id string, req models.NoticeRequest) (string, error) {
	if err := requireID(id, "exam id"); err != nil {
		return "", err
	}
	req.Notice = strings.TrimSpace(req.Notice)
	if err := s.validator.Struct(req); err != nil {
		return "", validationError(err, "notice is required")
	}
	payload, err := s.api.Post(ctx, s.adminPrefix+"/exam/update/notice/"+url.PathEscape(id), req)
	if err != nil {
		return "", err
	}
	return echoedText(payload, "notice", req.Notice), nil
}

// UpdateSyllabus replaces the syllabus and returns the stored text.
func (s *ExamService) UpdateSyllabus(ctx context.Context, id string, req models.SyllabusRequest) (string, error) {
	if err := requireID(id, "exam id"); err != nil {
		return "", err
	}
	req.Syllabus = strings.TrimSpace(req.Syllabus)
	if err := s.validator.Struct(req); err != nil {
		return "", validationError(err, "syllabus is required")
	}
	payload, err := s.api.Post(ctx, s.adminPrefix+"/exam/update/syllabus/"+url.PathEscape(id), req)
	if err != nil {
		return "", err
	}
	return echoedText(payload, "syllabus", req.Syllabus), nil
}

// UpdateResults publishes the correct answers of an exam. Every question of
// the exam needs exactly one answer before anything is sent.
func (s *ExamService) UpdateResults(ctx context.Context, examID string, answers []models.ResultAnswer) error {
	if len(answers) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "answers are required")
	}
	for i := range answers {
		answers[i].QuestionID = strings.TrimSpace(answers[i].QuestionID)
		answers[i].SelectedAnswer = strings.TrimSpace(answers[i].SelectedAnswer)
		if err := s.validator.Struct(answers[i]); err != nil {
			return validationError(err, "every question needs an answer")
		}
	}

	detail, err := s.Get(ctx, examID)
	if err != nil {
		return err
	}
	answered := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = struct{}{}
	}
	for _, q := range detail.Questions {
		if _, ok := answered[q.ID]; !ok {
			return appErrors.Clone(appErrors.ErrValidation, "every question needs an answer")
		}
	}

	_, err = s.api.Post(ctx, s.adminPrefix+"/exam/update-result", answers)
	if err != nil {
		return err
	}
	s.logger.Info("exam results updated", zap.String("exam_id", examID), zap.Int("answers", len(answers)))
	return nil
}

func (s *ExamService) validateExam(exam *models.Exam) error {
	exam.Name = strings.TrimSpace(exam.Name)
	exam.Position = strings.TrimSpace(exam.Position)
	if err := s.validator.Struct(exam); err != nil {
		return validationError(err, "invalid exam payload")
	}
	return nil
}

// questionsEditable reports whether the exam has not started yet.
func (s *ExamService) questionsEditable(exam *models.Exam) bool {
	return !exam.StartDate.IsZero() && exam.StartDate.After(s.clock.now())
}

func decodeExamEcho(payload apiclient.Payload, sent models.Exam) *models.Exam {
	if data := payload.Field("data"); data != nil {
		var exam models.Exam
		if err := data.Decode(&exam); err == nil {
			return &exam
		}
	}
	return &sent
}

func echoedText(payload apiclient.Payload, field, sent string) string {
	var echoed map[string]interface{}
	if data := payload.Field("data"); data != nil && data.Decode(&echoed) == nil {
		if text, ok := echoed[field].(string); ok {
			return text
		}
	}
	return sent
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}
