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
	questionCreatePath = "/staff/exam/question/create"
	questionUpdatePath = "/staff/exam/question/update/"
	questionDeletePath = "/staff/exam/question/delete/"
)

type examLoader interface {
	Get(ctx context.Context, id string) (*models.ExamDetail, error)
}

// QuestionService edits the questions of an exam. Changes are only accepted
// while the exam's start date lies in the future.
type QuestionService struct {
	api       apiCaller
	exams     examLoader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQuestionService constructs a QuestionService.
func NewQuestionService(api apiCaller, exams examLoader, validate *validator.Validate, logger *zap.Logger) *QuestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &QuestionService{api: api, exams: exams, validator: validate, logger: logger}
}

// Create adds a question to examID.
func (s *QuestionService) Create(ctx context.Context, examID string, q models.Question) (*models.Question, error) {
	if err := requireID(examID, "exam id"); err != nil {
		return nil, err
	}
	if err := s.Validate(&q); err != nil {
		return nil, err
	}
	if err := s.ensureEditable(ctx, examID); err != nil {
		return nil, err
	}
	q.ID = ""
	q.ExamID = examID
	payload, err := s.api.Post(ctx, questionCreatePath, q)
	if err != nil {
		return nil, err
	}
	return decodeQuestionEcho(payload, q), nil
}

// Update replaces question questionID of examID.
func (s *QuestionService) Update(ctx context.Context, examID, questionID string, q models.Question) (*models.Question, error) {
	if err := requireID(examID, "exam id"); err != nil {
		return nil, err
	}
	if err := requireID(questionID, "question id"); err != nil {
		return nil, err
	}
	if err := s.Validate(&q); err != nil {
		return nil, err
	}
	if err := s.ensureEditable(ctx, examID); err != nil {
		return nil, err
	}
	q.ID = questionID
	q.ExamID = examID
	payload, err := s.api.Put(ctx, questionUpdatePath+url.PathEscape(questionID), q)
	if err != nil {
		return nil, err
	}
	return decodeQuestionEcho(payload, q), nil
}

// Delete removes question questionID of examID.
func (s *QuestionService) Delete(ctx context.Context, examID, questionID string) error {
	if err := requireID(examID, "exam id"); err != nil {
		return err
	}
	if err := requireID(questionID, "question id"); err != nil {
		return err
	}
	if err := s.ensureEditable(ctx, examID); err != nil {
		return err
	}
	_, err := s.api.Delete(ctx, questionDeletePath+url.PathEscape(questionID))
	return err
}

// Validate trims q and checks the required fields. It makes no network call.
func (s *QuestionService) Validate(q *models.Question) error {
	q.Topic = strings.TrimSpace(q.Topic)
	q.Body = strings.TrimSpace(q.Body)
	for i := range q.Fields {
		q.Fields[i] = strings.TrimSpace(q.Fields[i])
	}
	if q.Type == "" {
		q.Type = models.QuestionTypeMCQ
	}
	if len(q.Fields) != models.QuestionFieldCount {
		return appErrors.Clone(appErrors.ErrValidation, "Please fill all 4 answer fields before saving")
	}
	if err := s.validator.Struct(q); err != nil {
		return validationError(err, "invalid question payload")
	}
	return nil
}

func (s *QuestionService) ensureEditable(ctx context.Context, examID string) error {
	detail, err := s.exams.Get(ctx, examID)
	if err != nil {
		return err
	}
	if !detail.Editable {
		s.logger.Info("question change rejected, exam already started", zap.String("exam_id", examID))
		return appErrors.Clone(appErrors.ErrQuestionLocked, appErrors.ErrQuestionLocked.Message)
	}
	return nil
}

func decodeQuestionEcho(payload apiclient.Payload, sent models.Question) *models.Question {
	if data := payload.Field("data"); data != nil {
		var q models.Question
		if err := data.Decode(&q); err == nil {
			return &q
		}
	}
	return &sent
}
