package service

import (
	"time"

	"github.com/intellixel001/suvashpanel/internal/filter"
	"github.com/intellixel001/suvashpanel/internal/models"
)

func taskCreatedAt(t models.Task) time.Time { return t.CreatedAt.Time }

// FilterTasks applies date, priority and status, newest first.
func FilterTasks(tasks []models.Task, f models.TaskFilter) []models.Task {
	view := filter.Apply(tasks,
		filter.SameDay(f.Date, taskCreatedAt),
		filter.Equals(f.Priority, func(t models.Task) string { return string(t.Priority) }),
		filter.Equals(f.Status, func(t models.Task) string { return string(t.Status) }),
	)
	return filter.SortedByTimeDesc(view, taskCreatedAt)
}

// FilterExams applies name search, live status, position, class and subject.
// Class and subject compare numerically when both sides are numbers.
func FilterExams(exams []models.Exam, f models.ExamFilter) []models.Exam {
	return filter.Apply(exams,
		filter.Contains(f.Search, func(e models.Exam) string { return e.Name }),
		filter.Bool(f.Status, models.ExamStatusActive, models.ExamStatusFinished, func(e models.Exam) bool { return e.IsLive }),
		filter.Equals(f.Position, func(e models.Exam) string { return e.Position }),
		filter.Match(f.Class, func(e models.Exam, v string) bool { return e.Class.Matches(v) }),
		filter.Match(f.Subject, func(e models.Exam, v string) bool { return e.Subject.Matches(v) }),
	)
}

// FilterPackages applies name search, position, class and subject.
func FilterPackages(pkgs []models.Package, f models.PackageFilter) []models.Package {
	return filter.Apply(pkgs,
		filter.Contains(f.Search, func(p models.Package) string { return p.Name }),
		filter.Equals(f.Position, func(p models.Package) string { return p.Position }),
		filter.Equals(f.ClassID, func(p models.Package) string { return p.ClassID }),
		filter.Equals(f.SubjectID, func(p models.Package) string { return p.SubjectID }),
	)
}

// FilterQuestions searches question bodies.
func FilterQuestions(questions []models.Question, f models.QuestionFilter) []models.Question {
	return filter.Apply(questions,
		filter.Contains(f.Search, func(q models.Question) string { return q.Body }),
	)
}

// ClassesFor lists the class options of position, or every class when
// position is unset.
func ClassesFor(options []models.ExamOption, position string) []models.ExamOption {
	return filter.Apply(options,
		func(o models.ExamOption) bool { return o.Type == models.OptionTypeClass },
		filter.Equals(position, func(o models.ExamOption) string { return o.Position }),
	)
}

// SubjectsFor lists the active subjects of the class whose id is classID.
func SubjectsFor(options []models.ExamOption, classID string) []models.ExamOption {
	if filter.Unset(classID) {
		return []models.ExamOption{}
	}
	var class *models.ExamOption
	for i := range options {
		if options[i].Type == models.OptionTypeClass && options[i].ID.Matches(classID) {
			class = &options[i]
			break
		}
	}
	if class == nil {
		return []models.ExamOption{}
	}
	className := class.ClassName
	if className == "" {
		className = class.Name
	}
	return filter.Apply(options, func(o models.ExamOption) bool {
		return o.Type == models.OptionTypeSubject &&
			o.ClassName == className &&
			o.Position == class.Position &&
			o.Status
	})
}

// WithPosition selects position and clears class and subject when they no
// longer belong to it.
func WithPosition(f models.ExamFilter, position string, options []models.ExamOption) models.ExamFilter {
	f.Position = position
	f.Class = filter.ResetIfInvalid(f.Class, optionIDs(ClassesFor(options, position)))
	return WithClass(f, f.Class, options)
}

// WithClass selects class and clears subject when it no longer belongs to it.
func WithClass(f models.ExamFilter, class string, options []models.ExamOption) models.ExamFilter {
	f.Class = class
	f.Subject = filter.ResetIfInvalid(f.Subject, optionIDs(SubjectsFor(options, class)))
	return f
}

// ScopePackageFilter clears a class that is not offered for the position and
// a subject that is not offered for the class.
func ScopePackageFilter(f models.PackageFilter, classes, subjects []models.PackageOption) models.PackageFilter {
	f.ClassID = filter.ResetIfInvalid(f.ClassID, packageOptionIDs(classes))
	f.SubjectID = filter.ResetIfInvalid(f.SubjectID, packageOptionIDs(subjects))
	return f
}

func packageOptionIDs(options []models.PackageOption) []string {
	ids := make([]string, 0, len(options))
	for _, o := range options {
		ids = append(ids, o.ID)
	}
	return ids
}

func optionIDs(options []models.ExamOption) []string {
	ids := make([]string, 0, len(options))
	for _, o := range options {
		ids = append(ids, o.ID.String())
	}
	return ids
}

// Views memoizes the filtered views served by the dashboard.
type Views struct {
	tasks     *filter.Memo[models.Task, models.TaskFilter]
	exams     *filter.Memo[models.Exam, models.ExamFilter]
	packages  *filter.Memo[models.Package, models.PackageFilter]
	questions *filter.Memo[models.Question, models.QuestionFilter]
}

// NewViews builds empty view caches.
func NewViews() *Views {
	return &Views{
		tasks:     filter.NewMemo(FilterTasks),
		exams:     filter.NewMemo(FilterExams),
		packages:  filter.NewMemo(FilterPackages),
		questions: filter.NewMemo(FilterQuestions),
	}
}

func (v *Views) Tasks(items []models.Task, f models.TaskFilter) []models.Task {
	return v.tasks.View(items, f)
}

func (v *Views) Exams(items []models.Exam, f models.ExamFilter) []models.Exam {
	return v.exams.View(items, f)
}

func (v *Views) Packages(items []models.Package, f models.PackageFilter) []models.Package {
	return v.packages.View(items, f)
}

func (v *Views) Questions(items []models.Question, f models.QuestionFilter) []models.Question {
	return v.questions.View(items, f)
}
