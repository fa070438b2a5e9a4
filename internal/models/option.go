package models

// Exam option types.
const (
	OptionTypeClass   = "class"
	OptionTypeSubject = "subject"
)

// ExamOption is a class or subject from /staff/exam/option/get. Subjects
// point at their class through ClassName and Position.
type ExamOption struct {
	ID        FlexibleString `json:"id"`
	Type      string         `json:"type"`
	Name      string         `json:"name"`
	Position  string         `json:"position"`
	ClassName string         `json:"className,omitempty"`
	Status    bool           `json:"status"`
}
