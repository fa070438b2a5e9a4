package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/credential"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

// State is the position of one logical request in the refresh cycle.
type State int

const (
	StateSent State = iota
	StateAwaitingRefresh
	StateReplayed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSent:
		return "sent"
	case StateAwaitingRefresh:
		return "awaiting_refresh"
	case StateReplayed:
		return "replayed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type attempt struct {
	state State
}

// unauthorized records a 401 and reports whether a refresh may run. Only the
// first response of an attempt qualifies.
func (a *attempt) unauthorized() bool {
	if a.state == StateSent {
		a.state = StateAwaitingRefresh
		return true
	}
	a.state = StateFailed
	return false
}

func (a *attempt) refreshed() {
	if a.state == StateAwaitingRefresh {
		a.state = StateReplayed
	}
}

func (a *attempt) abandon() {
	a.state = StateFailed
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Data         *struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"data"`
}

// refresh exchanges the stored refresh token for a new access token. When no
// refresh token is held, or the exchange fails, both tokens are dropped and
// the navigator is sent to the login route.
func (c *Client) refresh(ctx context.Context, method, path, reqID string, rejected *reply) error {
	creds, err := c.store.Get(ctx)
	if err != nil {
		return c.report(method, path, reqID, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read credentials"))
	}
	if !creds.HasRefresh() {
		c.observer.ObserveRefresh(RefreshSkipped)
		c.endSession(ctx)
		return c.report(method, path, reqID, classifyStatus(rejected.status, rejected.body))
	}

	next, err := c.exchangeRefresh(ctx, reqID, creds)
	if err == nil {
		err = c.store.Set(ctx, next)
	}
	if err != nil {
		c.observer.ObserveRefresh(RefreshFailed)
		c.endSession(ctx)
		return c.report(http.MethodPost, c.refreshPath, reqID,
			appErrors.Wrap(err, appErrors.ErrRefreshFailed.Code, appErrors.ErrRefreshFailed.Status, appErrors.ErrRefreshFailed.Message))
	}
	c.observer.ObserveRefresh(RefreshSucceeded)
	return nil
}

// exchangeRefresh performs the dedicated refresh call. It carries no bearer
// token and is never itself refreshed or replayed.
func (c *Client) exchangeRefresh(ctx context.Context, reqID string, creds credential.Credentials) (credential.Credentials, error) {
	body, err := encodeBody(refreshRequest{RefreshToken: creds.RefreshToken})
	if err != nil {
		return credential.Credentials{}, err
	}
	rep, err := c.roundTrip(ctx, http.MethodPost, c.refreshPath, body, reqID, false)
	if err != nil {
		return credential.Credentials{}, err
	}
	if !rep.ok() {
		return credential.Credentials{}, fmt.Errorf("refresh responded %d: %s", rep.status, ServerMessage(rep.body))
	}

	var decoded refreshResponse
	if err := Payload(rep.body).Decode(&decoded); err != nil {
		return credential.Credentials{}, err
	}
	if decoded.AccessToken == "" && decoded.Data != nil {
		decoded.AccessToken = decoded.Data.AccessToken
		decoded.RefreshToken = decoded.Data.RefreshToken
	}
	if decoded.AccessToken == "" {
		return credential.Credentials{}, fmt.Errorf("refresh response carried no access token")
	}

	next := credential.Credentials{AccessToken: decoded.AccessToken, RefreshToken: creds.RefreshToken}
	if decoded.RefreshToken != "" {
		next.RefreshToken = decoded.RefreshToken
	}
	return next, nil
}

func (c *Client) endSession(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error("clear credentials failed", zap.Error(err))
	}
	c.navigator.RedirectToLogin(c.loginRoute)
}
