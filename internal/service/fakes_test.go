package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/intellixel001/suvashpanel/internal/apiclient"
)

type apiCall struct {
	method string
	path   string
	body   string
}

type fakeResponse struct {
	payload string
	err     error
}

// mockAPI answers by "METHOD path" and records every call.
type mockAPI struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []apiCall
}

func newMockAPI() *mockAPI {
	return &mockAPI{responses: map[string]fakeResponse{}}
}

func (m *mockAPI) on(method, path, payload string) *mockAPI {
	m.responses[method+" "+path] = fakeResponse{payload: payload}
	return m
}

func (m *mockAPI) fail(method, path string, err error) *mockAPI {
	m.responses[method+" "+path] = fakeResponse{err: err}
	return m
}

func (m *mockAPI) do(method, path string, body interface{}) (apiclient.Payload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	encoded := ""
	if body != nil {
		raw, _ := json.Marshal(body)
		encoded = string(raw)
	}
	m.calls = append(m.calls, apiCall{method: method, path: path, body: encoded})
	resp, ok := m.responses[method+" "+path]
	if !ok {
		return apiclient.Payload(`{}`), nil
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return apiclient.Payload(resp.payload), nil
}

func (m *mockAPI) Get(_ context.Context, path string) (apiclient.Payload, error) {
	return m.do(http.MethodGet, path, nil)
}

func (m *mockAPI) Post(_ context.Context, path string, body interface{}) (apiclient.Payload, error) {
	return m.do(http.MethodPost, path, body)
}

func (m *mockAPI) Put(_ context.Context, path string, body interface{}) (apiclient.Payload, error) {
	return m.do(http.MethodPut, path, body)
}

func (m *mockAPI) Delete(_ context.Context, path string) (apiclient.Payload, error) {
	return m.do(http.MethodDelete, path, nil)
}

func (m *mockAPI) callsTo(method string) []apiCall {
	var out []apiCall
	for _, c := range m.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func (m *mockAPI) paths() []string {
	out := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c.method+" "+c.path)
	}
	return out
}

func (m *mockAPI) lastBody() map[string]interface{} {
	if len(m.calls) == 0 {
		return nil
	}
	var decoded map[string]interface{}
	_ = json.NewDecoder(strings.NewReader(m.calls[len(m.calls)-1].body)).Decode(&decoded)
	return decoded
}
