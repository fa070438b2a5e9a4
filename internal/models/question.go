package models

// Question types.
const (
	QuestionTypeMCQ          = "mcq"
	QuestionTypeParagraphSub = "paragraph-sub"
)

// QuestionFieldCount is the fixed number of answer fields.
const QuestionFieldCount = 4

// Question belongs to an exam. Answer is a 1-based index into Fields.
type Question struct {
	ID          string      `json:"_id,omitempty"`
	ExamID      string      `json:"examid,omitempty"`
	Type        string      `json:"type" validate:"omitempty,oneof=mcq paragraph-sub"`
	Topic       string      `json:"topic" validate:"required"`
	Body        string      `json:"body" validate:"required"`
	Fields      []string    `json:"fields" validate:"len=4,dive,required"`
	Answer      FlexibleInt `json:"answer" validate:"min=1,max=4"`
	Explanation string      `json:"explanation,omitempty"`
}

// QuestionFilter narrows the question list of one exam.
type QuestionFilter struct {
	Search string `form:"search" json:"search"`
}
