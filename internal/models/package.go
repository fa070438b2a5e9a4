package models

// Package is a purchasable bundle of exams for one class and subject.
type Package struct {
	ID        string  `json:"_id,omitempty"`
	Name      string  `json:"name" validate:"required"`
	Position  string  `json:"position" validate:"required"`
	ClassID   string  `json:"classId"`
	SubjectID string  `json:"subjectId"`
	Duration  int     `json:"duration" validate:"gte=0"`
	Price     float64 `json:"price" validate:"gte=0"`
	Status    bool    `json:"status"`
}

// PackageFilter narrows the package list. Position, class and subject are
// also sent upstream as query parameters.
type PackageFilter struct {
	Search    string `form:"search" json:"search"`
	Position  string `form:"position" json:"position"`
	ClassID   string `form:"class" json:"class"`
	SubjectID string `form:"subject" json:"subject"`
}

// PackageOption is a class or subject choice for the package form.
type PackageOption struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
