package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// AuthResult is the non-throwing envelope returned by login and register.
type AuthResult struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Error       string              `json:"error,omitempty"`
	FieldErrors map[string][]string `json:"errors,omitempty"`
}

// ErrorPayload is the body of a non-2xx API response.
//
// Error is kept raw: the server sends either a string ("Invalid credentials")
// or a field → messages object for validation failures.
type ErrorPayload struct {
	Message string              `json:"message,omitempty"`
	Error   json.RawMessage     `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Detail  string              `json:"detail,omitempty"`
}

// ErrorText returns Error when it is a JSON string, else Detail.
func (p *ErrorPayload) ErrorText() string {
	if p == nil {
		return ""
	}
	var s string
	if len(p.Error) > 0 && json.Unmarshal(p.Error, &s) == nil && s != "" {
		return s
	}
	return p.Detail
}

// FieldErrors normalizes Error into field → messages. Explicit Errors win.
func (p *ErrorPayload) FieldErrors() map[string][]string {
	if p == nil {
		return nil
	}
	if len(p.Errors) > 0 {
		return p.Errors
	}
	return NormalizeFieldErrors(p.Error)
}

// NormalizeFieldErrors flattens an `{"field": message|[messages]|{sub: [...]}}`
// object into field → messages. String values become one-element slices and
// nested objects are flattened in key order. It returns nil when raw is not
// an object or yields no fields.
func NormalizeFieldErrors(raw json.RawMessage) map[string][]string {
	fields, err := orderedMembers(raw)
	if err != nil || len(fields) == 0 {
		return nil
	}

	result := make(map[string][]string, len(fields))
	for _, f := range fields {
		if msgs := flattenMessages(f.value); msgs != nil {
			result[f.key] = msgs
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func flattenMessages(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return nil
		}
		return []string{s}
	case '[':
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) != nil {
			return nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, flattenMessages(item)...)
		}
		return out
	case '{':
		members, err := orderedMembers(raw)
		if err != nil {
			return nil
		}
		out := make([]string, 0, len(members))
		for _, m := range members {
			out = append(out, flattenMessages(m.value)...)
		}
		return out
	}
	return nil
}

type member struct {
	key   string
	value json.RawMessage
}

var errNotObject = errors.New("not a JSON object")

// orderedMembers decodes a JSON object keeping its key order.
func orderedMembers(raw json.RawMessage) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var out []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		out = append(out, member{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return out, nil
}
