package models

// Exam positions.
const (
	PositionAcademic  = "Academic"
	PositionAdmission = "Admission"
	PositionJob       = "Job"
)

// Positions lists the selectable exam positions in display order.
var Positions = []string{PositionAcademic, PositionAdmission, PositionJob}

// Exam billing types.
const (
	BillingFree = "free"
	BillingPaid = "paid"
)

// Exam status filter values.
const (
	ExamStatusActive   = "active"
	ExamStatusFinished = "finished"
)

// Exam is a scheduled exam as exchanged with /staff/exam.
type Exam struct {
	ID                  string         `json:"_id,omitempty"`
	Name                string         `json:"name" validate:"required"`
	Description         string         `json:"description"`
	BillingType         string         `json:"billingType" validate:"omitempty,oneof=free paid"`
	Position            string         `json:"position" validate:"required"`
	Class               FlexibleString `json:"class" validate:"required"`
	Subject             FlexibleString `json:"subject"`
	Duration            int            `json:"duration" validate:"gte=0"`
	Cutmark             float64        `json:"cutmark" validate:"gte=0,lte=100"`
	NegativeMark        float64        `json:"nagetivemark" validate:"gte=0"`
	IsLive              bool           `json:"isLive"`
	Status              bool           `json:"status"`
	StartDate           Timestamp      `json:"startDate"`
	ResultPublishedDate Timestamp      `json:"resultPublishedDate"`
	Notice              string         `json:"notice,omitempty"`
	Syllabus            string         `json:"syllabus,omitempty"`
}

// ExamDetail is an exam with its questions, from /staff/exam/get/:id.
type ExamDetail struct {
	Exam      *Exam      `json:"exam"`
	Questions []Question `json:"questions"`
	Editable  bool       `json:"editable"`
}

// ExamFilter narrows the exam table. "" and "all" are inactive.
type ExamFilter struct {
	Search   string `form:"search" json:"search"`
	Status   string `form:"status" json:"status"`
	Position string `form:"position" json:"position"`
	Class    string `form:"class" json:"class"`
	Subject  string `form:"subject" json:"subject"`
}

// NoticeRequest replaces an exam's notice.
type NoticeRequest struct {
	Notice string `json:"notice" validate:"required"`
}

// SyllabusRequest replaces an exam's syllabus.
type SyllabusRequest struct {
	Syllabus string `json:"syllabus" validate:"required"`
}

// ResultAnswer is the correct answer for one question when publishing results.
type ResultAnswer struct {
	QuestionID     string `json:"questionId" validate:"required"`
	SelectedAnswer string `json:"selectedAnswer" validate:"required"`
}
