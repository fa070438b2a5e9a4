package apiclient

import (
	"bytes"
	"encoding/json"

	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

// Payload is the decoded body of a successful response.
type Payload json.RawMessage

// Empty reports whether the body is absent or JSON null.
func (p Payload) Empty() bool {
	trimmed := bytes.TrimSpace(p)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Decode unmarshals the payload into out.
func (p Payload) Decode(out interface{}) error {
	if p.Empty() {
		return appErrors.Clone(appErrors.ErrUnexpectedResponse, "unexpected response, the body was empty")
	}
	if err := json.Unmarshal(p, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnexpectedResponse.Code, appErrors.ErrUnexpectedResponse.Status, appErrors.ErrUnexpectedResponse.Message)
	}
	return nil
}

// Field returns the named member of a JSON object payload, or nil.
func (p Payload) Field(name string) Payload {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(p, &obj); err != nil {
		return nil
	}
	value, ok := obj[name]
	if !ok {
		return nil
	}
	field := Payload(value)
	if field.Empty() {
		return nil
	}
	return field
}

// MarshalJSON lets a Payload be embedded in a response unchanged.
func (p Payload) MarshalJSON() ([]byte, error) {
	if p.Empty() {
		return []byte("null"), nil
	}
	return p, nil
}
