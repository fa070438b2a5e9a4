package models

import "strings"

// Role is the account role reported by the API.
type Role string

const (
	RoleStaff   Role = "staff"
	RoleTeacher Role = "teacher"
)

// User is the logged in staff member as returned by /staff/get-staff.
type User struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Role   Role   `json:"role"`
	Topics string `json:"topics,omitempty"`
}

// TopicList parses the raw topics string into the question topic choices.
// Quotes are stripped, entries are trimmed, and empties and repeats dropped.
func (u *User) TopicList() []string {
	if u == nil {
		return []string{}
	}
	raw := strings.ReplaceAll(u.Topics, `"`, "")
	seen := make(map[string]struct{})
	topics := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		topic := strings.TrimSpace(part)
		if topic == "" {
			continue
		}
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}
	return topics
}
