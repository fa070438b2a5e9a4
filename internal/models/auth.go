package models

import "time"

// LoginRequest is the operator's sign-in form.
type LoginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StaffLoginRequest is the body sent to /staff/login.
type StaffLoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	From     string `json:"from"`
}

// StaffLoginResponse is the body returned by /staff/login.
type StaffLoginResponse struct {
	Data         *User  `json:"data"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SessionView summarises the dashboard session for the front end.
type SessionView struct {
	User           *User       `json:"user"`
	Status         string      `json:"status"`
	Error          string      `json:"error,omitempty"`
	Topics         []string    `json:"topics"`
	Menu           []MenuEntry `json:"menu"`
	Authenticated  bool        `json:"authenticated"`
	TokenExpiresAt *time.Time  `json:"tokenExpiresAt,omitempty"`
}
