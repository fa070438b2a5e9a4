package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/apiclient"
	"github.com/intellixel001/suvashpanel/internal/models"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

const (
	currentUserPath      = "/staff/get-staff"
	currentUserFailedMsg = "Failed to fetch current user"
)

// SessionState is the current operator and the status of its last fetch.
type SessionState struct {
	User   *models.User `json:"user"`
	Status Status       `json:"status"`
	Error  string       `json:"error,omitempty"`
}

// SessionAction drives ReduceSession.
type SessionAction struct {
	Kind Kind
	User *models.User
	Err  string
}

// ReduceSession is the session reducer. A rejected fetch keeps the user
// already held.
func ReduceSession(state SessionState, action SessionAction) SessionState {
	switch action.Kind {
	case KindPending:
		state.Status = StatusLoading
		state.Error = ""
	case KindFulfilled:
		state.User = action.User
		state.Status = StatusReady
		state.Error = ""
	case KindRejected:
		state.Status = StatusError
		state.Error = action.Err
	case KindSetUser:
		state.User = action.User
		state.Status = StatusReady
		state.Error = ""
	case KindLogout:
		state = SessionState{Status: StatusIdle}
	}
	return state
}

// SessionStore tracks who is logged in.
type SessionStore struct {
	*Store[SessionState, SessionAction]
	api    Getter
	logger *zap.Logger
}

// NewSessionStore builds an idle SessionStore.
func NewSessionStore(api Getter, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		Store:  New(SessionState{Status: StatusIdle}, ReduceSession),
		api:    api,
		logger: logger,
	}
}

// Refresh reloads the current user. Concurrent calls are not coalesced; the
// last one to finish wins.
func (s *SessionStore) Refresh(ctx context.Context) (SessionState, error) {
	s.Dispatch(SessionAction{Kind: KindPending})

	payload, err := s.api.Get(ctx, currentUserPath)
	if err == nil {
		var user *models.User
		user, err = decodeUser(payload)
		if err == nil {
			return s.Dispatch(SessionAction{Kind: KindFulfilled, User: user}), nil
		}
	}

	msg := apiclient.MessageOr(err, currentUserFailedMsg)
	s.logger.Warn("session refresh failed", zap.String("message", msg), zap.Error(err))
	return s.Dispatch(SessionAction{Kind: KindRejected, Err: msg}), err
}

// SetUser stores the user returned at login.
func (s *SessionStore) SetUser(user *models.User) SessionState {
	return s.Dispatch(SessionAction{Kind: KindSetUser, User: user})
}

// Logout forgets the user and any error.
func (s *SessionStore) Logout() SessionState {
	return s.Dispatch(SessionAction{Kind: KindLogout})
}

// RedirectToLogin lets the store act as the API client's navigator.
func (s *SessionStore) RedirectToLogin(route string) {
	s.logger.Info("session ended, login required", zap.String("route", route))
	s.Logout()
}

func decodeUser(payload apiclient.Payload) (*models.User, error) {
	data := payload.Field("data")
	if nested := data.Field("data"); nested != nil {
		data = nested
	}
	if data == nil {
		return nil, appErrors.Clone(appErrors.ErrUnexpectedResponse, currentUserFailedMsg)
	}
	var user models.User
	if err := data.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
