package marvel

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response represents a response from the Marvel API.
// Data is nil for error responses, which carry Code and Status or Message instead.
type Response[T any] struct {
	Code            Code     `json:"code"`
	Status          string   `json:"status,omitempty"`
	Message         string   `json:"message,omitempty"`
	AttributionText string   `json:"attributionText,omitempty"`
	ETag            string   `json:"etag,omitempty"`
	Data            *Page[T] `json:"data"`
}

// Page is a single page of results.
type Page[T any] struct {
	Pagination
	Results []T `json:"results"`
}

// Pagination represents pagination information from the API.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
	Count  int `json:"count"`
}

// Code is a response code. The API sends numbers for successful responses
// and either numbers or strings such as "InvalidCredentials" for errors.
type Code string

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (c *Code) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Code(n)
	return nil
}

// apiStatus holds the fields common to every response, used to report errors.
type apiStatus struct {
	Code    Code   `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s apiStatus) text() string {
	if s.Message != "" {
		return s.Message
	}

	return s.Status
}

// resource is a result type that can be decoded from a response envelope.
type resource interface {
	requiredFields() []string
}

// decodeResults unwraps the result list of a response envelope.
// A response without data decodes to an empty list; a data object without
// results, or a result missing a required field, is an error.
func decodeResults[T resource](raw json.RawMessage) ([]T, error) {
	var resp Response[json.RawMessage]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if resp.Data == nil {
		return []T{}, nil
	}
	if resp.Data.Results == nil {
		return nil, fmt.Errorf("%w: data has no results", ErrDecode)
	}

	var zero T
	required := zero.requiredFields()

	items := make([]T, 0, len(resp.Data.Results))
	for i, entry := range resp.Data.Results {
		if err := checkRequired(entry, required); err != nil {
			return nil, fmt.Errorf("%w: result %d: %w", ErrDecode, i, err)
		}

		var item T
		if err := json.Unmarshal(entry, &item); err != nil {
			return nil, fmt.Errorf("%w: result %d: %w", ErrDecode, i, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// checkRequired verifies entry is an object holding a non-null value for
// every field in required.
func checkRequired(entry json.RawMessage, required []string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("result is null")
	}

	for _, name := range required {
		v, ok := fields[name]
		if !ok || bytes.Equal(v, []byte("null")) {
			return fmt.Errorf("missing required field %q", name)
		}
	}

	return nil
}
