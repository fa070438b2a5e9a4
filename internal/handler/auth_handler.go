package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/credential"
	"github.com/intellixel001/suvashpanel/internal/models"
	"github.com/intellixel001/suvashpanel/internal/service"
	"github.com/intellixel001/suvashpanel/internal/store"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
	"github.com/intellixel001/suvashpanel/pkg/response"
)

// AuthHandler wires login, logout and the session view to HTTP endpoints.
type AuthHandler struct {
	service *service.AuthService
	session *store.SessionStore
	creds   credential.Store
	logger  *zap.Logger
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, session *store.SessionStore, creds credential.Store, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{service: svc, session: session, creds: creds, logger: logger}
}

// Login godoc
// @Summary Sign in
// @Description Exchange the operator's login id and password for a session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req, "login") {
		return
	}
	if _, err := h.service.Login(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	h.respondSession(c, h.session.GetState())
}

// Logout godoc
// @Summary Sign out
// @Description Drop both tokens and the session user
// @Tags Authentication
// @Success 204
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Session godoc
// @Summary Current session
// @Description User, fetch status, question topics, menu and token expiry
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	h.respondSession(c, h.session.GetState())
}

// RefreshSession godoc
// @Summary Reload the session user
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/session/refresh [post]
func (h *AuthHandler) RefreshSession(c *gin.Context) {
	state, err := h.session.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondSession(c, state)
}

// Menu godoc
// @Summary Navigation for the session user
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/menu [get]
func (h *AuthHandler) Menu(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrAuthExpired, "login required"))
		return
	}
	response.JSON(c, http.StatusOK, service.MenuFor(user.Role))
}

func (h *AuthHandler) respondSession(c *gin.Context, state store.SessionState) {
	view := models.SessionView{
		User:   state.User,
		Status: string(state.Status),
		Error:  state.Error,
		Topics: state.User.TopicList(),
		Menu:   []models.MenuEntry{},
	}
	if state.User != nil {
		view.Menu = service.MenuFor(state.User.Role)
	}
	held, err := h.creds.Get(c.Request.Context())
	if err != nil {
		h.logger.Warn("credential lookup failed", zap.Error(err))
	}
	view.Authenticated = held.HasAccess() && state.User != nil
	view.TokenExpiresAt = credential.ExpiresAt(held.AccessToken)
	response.JSON(c, http.StatusOK, view)
}
