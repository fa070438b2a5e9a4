// Package apiclient is the single outbound path to the Suvash REST API. It
// attaches the bearer token, unwraps response bodies, and recovers from an
// expired access token with one refresh and one replay.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/credential"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
	"github.com/intellixel001/suvashpanel/pkg/middleware/requestid"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultRefreshPath = "/auth/refresh"
	defaultLoginRoute  = "/login"
)

// Options configures a Client. BaseURL and Store are required.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	RefreshPath string
	LoginRoute  string
	Store       credential.Store
	Navigator   Navigator
	Observer    Observer
	Logger      *zap.Logger
	HTTPClient  *http.Client
}

// Client executes API calls on behalf of the logged in operator.
type Client struct {
	baseURL     string
	timeout     time.Duration
	refreshPath string
	loginRoute  string
	store       credential.Store
	navigator   Navigator
	observer    Observer
	logger      *zap.Logger
	http        *http.Client
}

// New validates opts and builds a Client.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", opts.BaseURL)
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	c := &Client{
		baseURL:     base,
		timeout:     opts.Timeout,
		refreshPath: opts.RefreshPath,
		loginRoute:  opts.LoginRoute,
		store:       opts.Store,
		navigator:   opts.Navigator,
		observer:    opts.Observer,
		logger:      opts.Logger,
		http:        opts.HTTPClient,
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.refreshPath == "" {
		c.refreshPath = defaultRefreshPath
	}
	if c.loginRoute == "" {
		c.loginRoute = defaultLoginRoute
	}
	if c.navigator == nil {
		c.navigator = NavigatorFunc(func(string) {})
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string) (Payload, error) {
	return c.Send(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (Payload, error) {
	return c.Send(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (Payload, error) {
	return c.Send(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (Payload, error) {
	return c.Send(ctx, http.MethodDelete, path, nil)
}

// Do sends the request and decodes the payload into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	payload, err := c.Send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return payload.Decode(out)
}

// Send executes one logical request. A 401 on the first attempt triggers a
// single refresh followed by a single replay; every other failure is
// classified, logged and returned.
func (c *Client) Send(ctx context.Context, method, path string, body interface{}) (Payload, error) {
	encoded, err := encodeBody(body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "request body could not be encoded")
	}
	reqID := requestid.FromContext(ctx)

	a := &attempt{}
	for {
		rep, err := c.roundTrip(ctx, method, path, encoded, reqID, true)
		if err != nil {
			return nil, c.report(method, path, reqID, classifyTransport(err))
		}
		if rep.ok() {
			return Payload(rep.body), nil
		}
		if rep.status != http.StatusUnauthorized || !a.unauthorized() {
			return nil, c.report(method, path, reqID, classifyStatus(rep.status, rep.body))
		}
		if err := c.refresh(ctx, method, path, reqID, rep); err != nil {
			a.abandon()
			return nil, err
		}
		a.refreshed()
	}
}

type reply struct {
	status int
	body   []byte
}

func (r *reply) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte, reqID string, withAuth bool) (*reply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.HeaderKey, reqID)
	if withAuth {
		creds, err := c.store.Get(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "credentials could not be read")
		}
		if creds.HasAccess() {
			req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observer.ObserveAPICall(method, 0, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.observer.ObserveAPICall(method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, err
	}
	return &reply{status: resp.StatusCode, body: data}, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func encodeBody(body interface{}) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return v, nil
	default:
		return json.Marshal(v)
	}
}
