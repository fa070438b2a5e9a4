package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellixel001/suvashpanel/internal/models"
	"github.com/intellixel001/suvashpanel/internal/store"
)

func at(s string) models.Timestamp {
	ts, err := models.ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func taskIDs(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: "a", Priority: models.TaskPriorityHigh, Status: models.TaskStatusPending, CreatedAt: at("2025-01-05T10:00:00Z")},
		{ID: "b", Priority: models.TaskPriorityLow, Status: models.TaskStatusPending, CreatedAt: at("2025-01-05T18:30:00Z")},
		{ID: "c", Priority: models.TaskPriorityHigh, Status: models.TaskStatusCompleted, CreatedAt: at("2025-01-06T09:00:00Z")},
		{ID: "d", Priority: models.TaskPriorityHigh, Status: models.TaskStatusPending},
	}
}

func TestFilterTasksByDayNewestFirst(t *testing.T) {
	got := FilterTasks(sampleTasks(), models.TaskFilter{Date: "2025-01-05"})
	assert.Equal(t, []string{"b", "a"}, taskIDs(got))

	got = FilterTasks(sampleTasks(), models.TaskFilter{Date: "2025-01-05", Priority: "high"})
	assert.Equal(t, []string{"a"}, taskIDs(got))

	got = FilterTasks(sampleTasks(), models.TaskFilter{Priority: "all", Status: "pending"})
	assert.Equal(t, []string{"b", "a", "d"}, taskIDs(got))

	assert.Empty(t, FilterTasks(sampleTasks(), models.TaskFilter{Date: "05/01/2025"}))
}

func TestFilterTasksOnRefreshedMinutePrecisionDates(t *testing.T) {
	api := newMockAPI().on("GET", "/staff/get-mytask",
		`{"myTasks":[{"_id":"a","createdAt":"2024-01-05T10:00Z"},{"_id":"b","createdAt":"2024-01-06T09:00Z"}]}`)
	tasks := store.NewTaskStore(api, nil)

	state, err := tasks.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.StatusReady, state.Status)

	got := FilterTasks(state.Tasks, models.TaskFilter{Date: "2024-01-05"})
	assert.Equal(t, []string{"a"}, taskIDs(got))
}

func sampleExams() []models.Exam {
	return []models.Exam{
		{ID: "e1", Name: "Weekly Physics", Position: "Academic", Class: "9", Subject: "3", IsLive: true},
		{ID: "e2", Name: "Physics Final", Position: "Academic", Class: "09", Subject: "4"},
		{ID: "e3", Name: "BCS Model Test", Position: "Job", Class: "21", Subject: "5", IsLive: true},
	}
}

func examIDs(exams []models.Exam) []string {
	out := make([]string, 0, len(exams))
	for _, e := range exams {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterExams(t *testing.T) {
	assert.Equal(t, []string{"e1", "e3"}, examIDs(FilterExams(sampleExams(), models.ExamFilter{Status: "active"})))
	assert.Equal(t, []string{"e2"}, examIDs(FilterExams(sampleExams(), models.ExamFilter{Status: "finished"})))
	assert.Empty(t, FilterExams(sampleExams(), models.ExamFilter{Status: "paused"}))
	assert.Equal(t, []string{"e1", "e2"}, examIDs(FilterExams(sampleExams(), models.ExamFilter{Search: "physics", Class: "9"})))
	assert.Equal(t, []string{"e1"}, examIDs(FilterExams(sampleExams(), models.ExamFilter{Position: "Academic", Subject: "3"})))
}

func sampleOptions() []models.ExamOption {
	return []models.ExamOption{
		{ID: "9", Type: models.OptionTypeClass, Name: "Class 9", Position: "Academic", ClassName: "Nine", Status: true},
		{ID: "21", Type: models.OptionTypeClass, Name: "BCS", Position: "Job", Status: true},
		{ID: "3", Type: models.OptionTypeSubject, Name: "Physics", Position: "Academic", ClassName: "Nine", Status: true},
		{ID: "4", Type: models.OptionTypeSubject, Name: "Chemistry", Position: "Academic", ClassName: "Nine", Status: false},
		{ID: "5", Type: models.OptionTypeSubject, Name: "General Knowledge", Position: "Job", ClassName: "BCS", Status: true},
		{ID: "6", Type: models.OptionTypeSubject, Name: "Stray", Position: "Job", ClassName: "Nine", Status: true},
	}
}

func TestClassesAndSubjectsFor(t *testing.T) {
	opts := sampleOptions()
	assert.Equal(t, []string{"9", "21"}, optionIDs(ClassesFor(opts, "")))
	assert.Equal(t, []string{"21"}, optionIDs(ClassesFor(opts, "Job")))

	assert.Equal(t, []string{"3"}, optionIDs(SubjectsFor(opts, "9")))
	assert.Equal(t, []string{"5"}, optionIDs(SubjectsFor(opts, "21")))
	assert.Empty(t, SubjectsFor(opts, "all"))
	assert.Empty(t, SubjectsFor(opts, "404"))
}

func TestWithPositionResetsDependentSelections(t *testing.T) {
	opts := sampleOptions()
	f := models.ExamFilter{Position: "Academic", Class: "9", Subject: "3", Search: "phy"}

	kept := WithPosition(f, "Academic", opts)
	assert.Equal(t, f, kept)

	moved := WithPosition(f, "Job", opts)
	assert.Equal(t, models.ExamFilter{Position: "Job", Search: "phy"}, moved)

	reclassed := WithClass(models.ExamFilter{Position: "Job", Class: "21", Subject: "3"}, "21", opts)
	assert.Equal(t, "", reclassed.Subject)
	assert.Equal(t, "21", reclassed.Class)
}

func TestViewsMemoizeEqualInputs(t *testing.T) {
	views := NewViews()
	exams := sampleExams()
	f := models.ExamFilter{Status: "active"}

	first := views.Exams(exams, f)
	second := views.Exams(sampleExams(), models.ExamFilter{Status: "active"})
	require.Len(t, first, 2)
	assert.Same(t, &first[0], &second[0])

	third := views.Exams(exams, models.ExamFilter{Status: "finished"})
	assert.Equal(t, []string{"e2"}, examIDs(third))

	tasks := views.Tasks(sampleTasks(), models.TaskFilter{Date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC).Format("2006-01-02")})
	assert.Equal(t, []string{"c"}, taskIDs(tasks))
}

func TestScopePackageFilter(t *testing.T) {
	classes := []models.PackageOption{{ID: "c9", Name: "Class 9"}}
	subjects := []models.PackageOption{{ID: "s1", Name: "Physics"}}

	got := ScopePackageFilter(models.PackageFilter{Position: "Academic", ClassID: "c10", SubjectID: "s1"}, classes, nil)
	assert.Equal(t, models.PackageFilter{Position: "Academic"}, got)

	got = ScopePackageFilter(models.PackageFilter{ClassID: "c9", SubjectID: "all"}, classes, subjects)
	assert.Equal(t, models.PackageFilter{ClassID: "c9", SubjectID: "all"}, got)
}
