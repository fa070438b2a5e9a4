package models

// TaskPriority is the closed set of task priorities.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskStatus is the closed set of task states.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDeclined   TaskStatus = "declined"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Task is an item from /staff/get-mytask.
type Task struct {
	ID        string       `json:"_id"`
	Message   string       `json:"message"`
	Priority  TaskPriority `json:"priority"`
	Status    TaskStatus   `json:"status"`
	CreatedAt Timestamp    `json:"createdAt"`
	TaskType  string       `json:"tasktype,omitempty"`
	ItemID    string       `json:"item_id,omitempty"`
}

// TaskFilter narrows the task view. Empty fields are inactive.
type TaskFilter struct {
	Date     string `form:"date" json:"date"`
	Priority string `form:"priority" json:"priority"`
	Status   string `form:"status" json:"status"`
}
