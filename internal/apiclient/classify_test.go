package apiclient

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		code    string
		want    int
		message string
		level   zapcore.Level
	}{
		{"bad request with message", http.StatusBadRequest, `{"message":"name is required"}`, "BAD_REQUEST", 400, "name is required", zapcore.WarnLevel},
		{"forbidden with error field", http.StatusForbidden, `{"error":"staff only"}`, "FORBIDDEN", 403, "staff only", zapcore.WarnLevel},
		{"not found without body", http.StatusNotFound, ``, "NOT_FOUND", 404, appErrors.ErrNotFound.Message, zapcore.WarnLevel},
		{"server error non json", http.StatusInternalServerError, `<html>oops</html>`, "SERVER_ERROR", 500, appErrors.ErrServer.Message, zapcore.ErrorLevel},
		{"unhandled keeps status", http.StatusTeapot, `{"message":"teapot"}`, "UNHANDLED_STATUS", 418, "teapot", zapcore.WarnLevel},
		{"unhandled conflict", http.StatusConflict, `{"message":"duplicate"}`, "UNHANDLED_STATUS", 409, "duplicate", zapcore.WarnLevel},
		{"unhandled gateway", http.StatusServiceUnavailable, ``, "UNHANDLED_STATUS", 503, appErrors.ErrUnhandledStatus.Message, zapcore.ErrorLevel},
		{"unauthorized", http.StatusUnauthorized, `{"message":"jwt expired"}`, "AUTH_EXPIRED", 401, "jwt expired", zapcore.WarnLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyStatus(tc.status, []byte(tc.body))
			assert.Equal(t, tc.code, err.Code)
			assert.Equal(t, tc.want, err.Status)
			assert.Equal(t, tc.message, err.Message)
			assert.Equal(t, tc.level, Severity(err))
		})
	}
}

func TestClassifyTransport(t *testing.T) {
	timeout := classifyTransport(context.DeadlineExceeded)
	assert.Equal(t, appErrors.ErrTimeout.Code, timeout.Code)
	assert.Equal(t, zapcore.ErrorLevel, Severity(timeout))

	network := classifyTransport(errors.New("dial tcp: connection refused"))
	assert.Equal(t, appErrors.ErrNetworkUnreachable.Code, network.Code)
	assert.Equal(t, http.StatusBadGateway, network.Status)

	local := appErrors.Wrap(errors.New("disk"), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "credentials could not be read")
	assert.Same(t, local, classifyTransport(local))
}

func TestClassifyDoesNotMutateSentinels(t *testing.T) {
	_ = classifyStatus(http.StatusBadRequest, []byte(`{"message":"changed"}`))
	assert.Equal(t, "bad request", appErrors.ErrBadRequest.Message)
}

func TestPayloadField(t *testing.T) {
	p := Payload(`{"data":{"data":{"name":"A"}},"empty":null}`)
	assert.JSONEq(t, `{"name":"A"}`, string(p.Field("data").Field("data")))
	assert.Nil(t, p.Field("empty"))
	assert.Nil(t, p.Field("missing"))
	assert.Nil(t, Payload(`[1,2]`).Field("data"))

	var out map[string]interface{}
	err := Payload(nil).Decode(&out)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnexpectedResponse.Code))
}

func TestMessageOr(t *testing.T) {
	fallback := "Failed to fetch tasks"
	assert.Equal(t, "token missing", MessageOr(classifyStatus(http.StatusBadRequest, []byte(`{"message":"token missing"}`)), fallback))
	assert.Equal(t, fallback, MessageOr(classifyStatus(http.StatusBadRequest, nil), fallback))
	assert.Equal(t, fallback, MessageOr(classifyTransport(errors.New("refused")), fallback))
	assert.Equal(t, fallback, MessageOr(errors.New("plain"), fallback))
	assert.Equal(t, fallback, MessageOr(nil, fallback))
}
