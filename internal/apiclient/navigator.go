package apiclient

import (
	"time"

	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

// Navigator is told where to send the operator once the session cannot be recovered.
type Navigator interface {
	RedirectToLogin(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// RedirectToLogin calls f(route).
func (f NavigatorFunc) RedirectToLogin(route string) { f(route) }

// Refresh outcomes reported to the Observer.
const (
	RefreshSucceeded = "success"
	RefreshFailed    = "failure"
	RefreshSkipped   = "no_refresh_token"
)

// Observer receives call metrics. Status is 0 when no response arrived.
type Observer interface {
	ObserveAPICall(method string, status int, duration time.Duration)
	ObserveRefresh(outcome string)
}

type nopObserver struct{}

func (nopObserver) ObserveAPICall(string, int, time.Duration) {}
func (nopObserver) ObserveRefresh(string)                     {}

// RequiresLogin reports whether err means the operator has to log in again.
func RequiresLogin(err error) bool {
	return appErrors.HasCode(err, appErrors.ErrAuthExpired.Code, appErrors.ErrRefreshFailed.Code)
}

var defaultMessages = map[string]string{
	appErrors.ErrNetworkUnreachable.Code: appErrors.ErrNetworkUnreachable.Message,
	appErrors.ErrTimeout.Code:            appErrors.ErrTimeout.Message,
	appErrors.ErrBadRequest.Code:         appErrors.ErrBadRequest.Message,
	appErrors.ErrForbidden.Code:          appErrors.ErrForbidden.Message,
	appErrors.ErrNotFound.Code:           appErrors.ErrNotFound.Message,
	appErrors.ErrServer.Code:             appErrors.ErrServer.Message,
	appErrors.ErrUnhandledStatus.Code:    appErrors.ErrUnhandledStatus.Message,
	appErrors.ErrAuthExpired.Code:        appErrors.ErrAuthExpired.Message,
	appErrors.ErrRefreshFailed.Code:      appErrors.ErrRefreshFailed.Message,
	appErrors.ErrUnexpectedResponse.Code: appErrors.ErrUnexpectedResponse.Message,
	appErrors.ErrInternal.Code:           appErrors.ErrInternal.Message,
}

// MessageOr returns the server supplied message carried by err, or fallback
// when err only carries its generic default.
func MessageOr(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	e := appErrors.FromError(err)
	if e.Message == "" || defaultMessages[e.Code] == e.Message {
		return fallback
	}
	return e.Message
}
