package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/models"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

const examDetailJSON = `{
	"data": {"_id":"e1","name":"Weekly Physics","position":"Academic","class":9,"subject":"3","startDate":"2025-03-02T10:00:00Z","isLive":false},
	"questions": [
		{"_id":"q1","body":"Speed of light?","fields":["a","b","c","d"],"answer":1,"topic":"Optics"},
		{"_id":"q2","body":"Unit of force?","fields":["N","J","W","Pa"],"answer":"1","topic":"Mechanics"}
	]
}`

func newExamService(api *mockAPI) *ExamService {
	return NewExamService(api, nil, zap.NewNop(), "admin/", fixedClock)
}

func TestExamServiceList(t *testing.T) {
	api := newMockAPI().on("GET", "/staff/exam/get", `{"data":[{"_id":"e1","name":"A"},{"_id":"e2","name":"B","class":"10"}]}`)
	exams, err := newExamService(api).List(context.Background())
	require.NoError(t, err)
	require.Len(t, exams, 2)
	assert.Equal(t, models.FlexibleString("10"), exams[1].Class)

	api = newMockAPI().on("GET", "/staff/exam/get", `{}`)
	exams, err = newExamService(api).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, exams)
	assert.Empty(t, exams)
}

func TestExamServiceGetMarksEditable(t *testing.T) {
	api := newMockAPI().on("GET", "/staff/exam/get/e1", examDetailJSON)
	detail, err := newExamService(api).Get(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "Weekly Physics", detail.Exam.Name)
	assert.Len(t, detail.Questions, 2)
	assert.Equal(t, models.FlexibleInt(1), detail.Questions[1].Answer)
	assert.True(t, detail.Editable)

	started := NewExamService(api, nil, nil, "/admin", func() time.Time { return fixedNow.Add(48 * time.Hour) })
	detail, err = started.Get(context.Background(), "e1")
	require.NoError(t, err)
	assert.False(t, detail.Editable)
}

func TestExamServiceGetMissingData(t *testing.T) {
	api := newMockAPI().on("GET", "/staff/exam/get/e9", `{"questions":[]}`)
	_, err := newExamService(api).Get(context.Background(), "e9")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestExamServiceCreateValidatesBeforeSending(t *testing.T) {
	api := newMockAPI()
	svc := newExamService(api)

	_, err := svc.Create(context.Background(), models.Exam{Name: "  ", Position: "Academic", Class: "9"})
	require.Error(t, err)
	assert.Equal(t, "name is required", appErrors.FromError(err).Message)

	_, err = svc.Create(context.Background(), models.Exam{Name: "Mock", Position: "Academic", Class: "9", Duration: -5})
	require.Error(t, err)
	assert.Equal(t, "duration must be at least 0", appErrors.FromError(err).Message)
	assert.Empty(t, api.calls)
}

func TestExamServiceMutations(t *testing.T) {
	api := newMockAPI().
		on("POST", "/staff/exam/create", `{"data":{"_id":"e7","name":"Mock"}}`).
		on("PUT", "/staff/exam/update/e7", `{"message":"updated"}`)
	svc := newExamService(api)
	exam := models.Exam{Name: "Mock", Position: "Job", Class: "21", BillingType: "paid", NegativeMark: 0.5}

	created, err := svc.Create(context.Background(), exam)
	require.NoError(t, err)
	assert.Equal(t, "e7", created.ID)
	assert.Equal(t, 0.5, api.lastBody()["nagetivemark"])

	updated, err := svc.Update(context.Background(), "e7", exam)
	require.NoError(t, err)
	assert.Equal(t, "e7", updated.ID)

	require.NoError(t, svc.Delete(context.Background(), "e7"))
	assert.Equal(t, []string{"POST /staff/exam/create", "PUT /staff/exam/update/e7", "DELETE /staff/delete-exam/e7"}, api.paths())
}

func TestExamServiceNoticeAndSyllabus(t *testing.T) {
	api := newMockAPI().on("POST", "/admin/exam/update/notice/e1", `{"data":{"notice":"Bring a pencil"}}`)
	svc := newExamService(api)

	notice, err := svc.UpdateNotice(context.Background(), "e1", models.NoticeRequest{Notice: "  Bring a pencil  "})
	require.NoError(t, err)
	assert.Equal(t, "Bring a pencil", notice)
	assert.Equal(t, "Bring a pencil", api.lastBody()["notice"])

	_, err = svc.UpdateSyllabus(context.Background(), "e1", models.SyllabusRequest{Syllabus: "\n"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))

	syllabus, err := svc.UpdateSyllabus(context.Background(), "e1", models.SyllabusRequest{Syllabus: "Chapters 1-3"})
	require.NoError(t, err)
	assert.Equal(t, "Chapters 1-3", syllabus)
	assert.Equal(t, "POST /admin/exam/update/syllabus/e1", api.paths()[1])
}

func TestExamServiceUpdateResultsRequiresEveryAnswer(t *testing.T) {
	api := newMockAPI().on("GET", "/staff/exam/get/e1", examDetailJSON)
	svc := newExamService(api)

	err := svc.UpdateResults(context.Background(), "e1", []models.ResultAnswer{{QuestionID: "q1", SelectedAnswer: "2"}})
	require.Error(t, err)
	assert.Equal(t, "every question needs an answer", appErrors.FromError(err).Message)
	assert.Empty(t, api.callsTo("POST"))

	err = svc.UpdateResults(context.Background(), "e1", []models.ResultAnswer{{QuestionID: "q1", SelectedAnswer: " "}})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))

	err = svc.UpdateResults(context.Background(), "e1", []models.ResultAnswer{
		{QuestionID: "q1", SelectedAnswer: "2"},
		{QuestionID: "q2", SelectedAnswer: "1"},
	})
	require.NoError(t, err)
	posts := api.callsTo("POST")
	require.Len(t, posts, 1)
	assert.Equal(t, "/admin/exam/update-result", posts[0].path)
	assert.JSONEq(t, `[{"questionId":"q1","selectedAnswer":"2"},{"questionId":"q2","selectedAnswer":"1"}]`, posts[0].body)
}
