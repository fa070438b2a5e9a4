package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/intellixel001/suvashpanel/internal/credential"
	"github.com/intellixel001/suvashpanel/internal/models"
	"github.com/intellixel001/suvashpanel/internal/service"
	"github.com/intellixel001/suvashpanel/internal/store"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

type fakeSession struct {
	state     store.SessionState
	refreshed store.SessionState
	err       error
	calls     int
}

func (f *fakeSession) GetState() store.SessionState { return f.state }

func (f *fakeSession) Refresh(context.Context) (store.SessionState, error) {
	f.calls++
	if f.err != nil {
		return store.SessionState{Status: store.StatusError}, f.err
	}
	f.state = f.refreshed
	return f.refreshed, nil
}

type envelope struct {
	Data  map[string]interface{} `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		user := CurrentUser(c)
		id := ""
		if user != nil {
			id = user.ID
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": id}})
	})
	r.GET("/probe/:id", handlers...)
	return r
}

func serve(r http.Handler) (*httptest.ResponseRecorder, envelope) {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe/x1", nil))
	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestRequireSessionWithoutTokenRedirects(t *testing.T) {
	session := &fakeSession{}
	rec, env := serve(newRouter(RequireSession(credential.NewMemoryStore(), session, nil)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrAuthExpired.Code, env.Error.Code)
	assert.Equal(t, "/login", env.Meta["redirect"])
	assert.Zero(t, session.calls)
}

func TestRequireSessionLoadsUserOnce(t *testing.T) {
	creds := credential.NewMemoryStore(credential.Credentials{AccessToken: "T1"})
	session := &fakeSession{refreshed: store.SessionState{User: &models.User{ID: "u1"}, Status: store.StatusReady}}
	r := newRouter(RequireSession(creds, session, nil))

	rec, env := serve(r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", env.Data["user"])

	serve(r)
	assert.Equal(t, 1, session.calls)
}

func TestRequireSessionPropagatesRefreshFailure(t *testing.T) {
	creds := credential.NewMemoryStore(credential.Credentials{AccessToken: "T1"})
	session := &fakeSession{err: appErrors.Clone(appErrors.ErrRefreshFailed, "")}

	rec, env := serve(newRouter(RequireSession(creds, session, nil)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, appErrors.ErrRefreshFailed.Code, env.Error.Code)
}

func withUser(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserKey, &models.User{ID: "u1", Role: role})
		c.Next()
	}
}

func TestRBAC(t *testing.T) {
	rec, _ := serve(newRouter(withUser(models.RoleStaff), RequireRoles(models.RoleStaff)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := serve(newRouter(withUser(models.RoleTeacher), RBAC(service.CanManageExams)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, appErrors.ErrForbidden.Code, env.Error.Code)

	rec, _ = serve(newRouter(RequireRoles(models.RoleStaff)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuditLogsSuccessfulMutations(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	serve(newRouter(withUser(models.RoleStaff), Audit(zap.New(core), "update", "exam")))

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "x1", fields["resource_id"])
	assert.Equal(t, "u1", fields["user_id"])
	assert.Equal(t, "/probe/:id", fields["path"])

	core, logs = observer.New(zapcore.InfoLevel)
	serve(newRouter(Audit(zap.New(core), "update", "exam"), RequireRoles(models.RoleStaff)))
	assert.Zero(t, logs.FilterMessage("audit").Len())
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	metrics := service.NewMetricsService()
	serve(newRouter(Metrics(metrics)))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `path="/probe/:id"`)
}

func TestMetaCounts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, ExtractMeta(c))

	SetCounts(c, 10, 3)
	SetMeta(c, "generatedAt", time.Unix(0, 0).UTC().Format(time.RFC3339))
	meta := ExtractMeta(c)
	assert.Equal(t, 10, meta[MetaTotal])
	assert.Equal(t, 3, meta[MetaFiltered])
	assert.Equal(t, "1970-01-01T00:00:00Z", meta["generatedAt"])
}
