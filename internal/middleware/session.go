package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/credential"
	"github.com/intellixel001/suvashpanel/internal/models"
	"github.com/intellixel001/suvashpanel/internal/store"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
	"github.com/intellixel001/suvashpanel/pkg/response"
)

// ContextUserKey is the gin context key storing the session user.
const ContextUserKey = "currentUser"

// SessionSource exposes the session user and reloads it on demand.
type SessionSource interface {
	GetState() store.SessionState
	Refresh(ctx context.Context) (store.SessionState, error)
}

// RequireSession rejects requests while no access token is held. When a
// token survives a restart but the session user is not loaded yet, the user
// is fetched once before the request continues.
func RequireSession(creds credential.Store, session SessionSource, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		held, err := creds.Get(c.Request.Context())
		if err != nil {
			logger.Error("credential lookup failed", zap.Error(err))
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read credentials"))
			c.Abort()
			return
		}
		if !held.HasAccess() {
			response.Error(c, appErrors.Clone(appErrors.ErrAuthExpired, "login required"))
			c.Abort()
			return
		}

		state := session.GetState()
		if state.User == nil {
			state, err = session.Refresh(c.Request.Context())
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
		}
		if state.User == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrAuthExpired, "login required"))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, state.User)
		c.Next()
	}
}

// CurrentUser returns the user placed on the context by RequireSession.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
