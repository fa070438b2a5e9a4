package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

// classifyTransport maps a failure with no HTTP response.
func classifyTransport(err error) *appErrors.Error {
	var local *appErrors.Error
	if errors.As(err, &local) {
		return local
	}
	if isTimeout(err) {
		return appErrors.Wrap(err, appErrors.ErrTimeout.Code, appErrors.ErrTimeout.Status, appErrors.ErrTimeout.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrNetworkUnreachable.Code, appErrors.ErrNetworkUnreachable.Status, appErrors.ErrNetworkUnreachable.Message)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// classifyStatus maps a non-2xx response. The message is taken from the body
// when the server supplied one.
func classifyStatus(status int, body []byte) *appErrors.Error {
	var base *appErrors.Error
	switch status {
	case http.StatusBadRequest:
		base = appErrors.ErrBadRequest
	case http.StatusUnauthorized:
		base = appErrors.ErrAuthExpired
	case http.StatusForbidden:
		base = appErrors.ErrForbidden
	case http.StatusNotFound:
		base = appErrors.ErrNotFound
	case http.StatusInternalServerError:
		base = appErrors.ErrServer
	default:
		base = appErrors.ErrUnhandledStatus
		if status >= 400 && status < 600 {
			base = appErrors.WithStatus(base, status)
		}
	}

	classified := appErrors.Clone(base, ServerMessage(body))
	classified.Err = fmt.Errorf("upstream responded %d", status)
	return classified
}

// ServerMessage extracts "message", falling back to "error", from a JSON body.
func ServerMessage(body []byte) string {
	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if msg, ok := decoded[key].(string); ok && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return ""
}

// Severity is the log level used for a classified failure.
func Severity(err error) zapcore.Level {
	if appErrors.HasCode(err,
		appErrors.ErrBadRequest.Code,
		appErrors.ErrForbidden.Code,
		appErrors.ErrNotFound.Code,
		appErrors.ErrAuthExpired.Code,
	) {
		return zapcore.WarnLevel
	}
	if e := appErrors.FromError(err); e != nil && e.Status >= 400 && e.Status < 500 {
		return zapcore.WarnLevel
	}
	return zapcore.ErrorLevel
}

func (c *Client) report(method, path, reqID string, err *appErrors.Error) error {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.String("code", err.Code),
		zap.Int("status", err.Status),
		zap.String("message", err.Message),
	}
	if err.Err != nil {
		fields = append(fields, zap.Error(err.Err))
	}
	if ce := c.logger.Check(Severity(err), "api_call_failed"); ce != nil {
		ce.Write(fields...)
	}
	return err
}
