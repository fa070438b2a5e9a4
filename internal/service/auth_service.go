package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/credential"
	"github.com/intellixel001/suvashpanel/internal/models"
	"github.com/intellixel001/suvashpanel/internal/store"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

const (
	loginPath          = "/staff/login"
	defaultLoginOrigin = "examapp"
)

type sessionHolder interface {
	SetUser(user *models.User) store.SessionState
	Logout() store.SessionState
}

// AuthService signs the operator in and out.
type AuthService struct {
	api       apiCaller
	creds     credential.Store
	session   sessionHolder
	validator *validator.Validate
	logger    *zap.Logger
	origin    string
}

// NewAuthService constructs an AuthService. origin is sent as the login "from" field.
func NewAuthService(api apiCaller, creds credential.Store, session sessionHolder, validate *validator.Validate, logger *zap.Logger, origin string) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if origin == "" {
		origin = defaultLoginOrigin
	}
	return &AuthService{api: api, creds: creds, session: session, validator: validate, logger: logger, origin: origin}
}

// Login exchanges the operator's credentials for a token pair and records
// the returned user in the session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	req.LoginID = strings.TrimSpace(req.LoginID)
	req.Password = strings.TrimSpace(req.Password)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid login payload")
	}

	payload, err := s.api.Post(ctx, loginPath, models.StaffLoginRequest{
		LoginID:  req.LoginID,
		Password: req.Password,
		From:     s.origin,
	})
	if err != nil {
		return nil, err
	}

	var resp models.StaffLoginResponse
	if err := payload.Decode(&resp); err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.AccessToken == "" || resp.RefreshToken == "" {
		s.logger.Warn("login response missing data", zap.String("login_id", req.LoginID))
		return nil, appErrors.Clone(appErrors.ErrUnexpectedResponse, "Unexpected response. Please try again.")
	}

	if err := s.creds.Set(ctx, credential.Credentials{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store credentials")
	}
	s.session.SetUser(resp.Data)
	s.logger.Info("operator logged in", zap.String("user_id", resp.Data.ID), zap.String("role", string(resp.Data.Role)))
	return resp.Data, nil
}

// Logout drops both tokens and the session user.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.creds.Clear(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear credentials")
	}
	s.session.Logout()
	return nil
}
