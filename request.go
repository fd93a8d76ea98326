package marvel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"unicode"
	"unicode/utf8"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
)

// buildURL resolves path against the base URL, encodes params and appends
// the authorization parameters ts, hash and apikey.
// A fresh timestamp and hash are computed on every call.
func (c *Client) buildURL(path string, params any) (*url.URL, error) {
	if c.baseURL == nil || !c.baseURL.IsAbs() {
		return nil, fmt.Errorf("%w: base url %v is not absolute", ErrInvalidURI, c.baseURL)
	}

	rel, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("%w: path %q: %w", ErrInvalidURI, path, err)
	}
	u := c.baseURL.ResolveReference(rel)

	values, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("%w: encode params: %w", ErrInvalidURI, err)
	}
	if err := validateValues(values); err != nil {
		return nil, err
	}

	ts := c.auth.timestamp()
	values.Set("ts", ts)
	values.Set("hash", c.auth.sign(ts))
	values.Set("apikey", c.auth.publicKey)
	u.RawQuery = values.Encode()

	if _, err := url.Parse(u.String()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}

	return u, nil
}

// validateValues rejects parameter values the API cannot receive.
func validateValues(values url.Values) error {
	for key, vs := range values {
		for _, v := range vs {
			if !utf8.ValidString(v) {
				return fmt.Errorf("%w: parameter %s is not valid UTF-8", ErrInvalidURI, key)
			}
			for _, r := range v {
				if unicode.IsControl(r) {
					return fmt.Errorf("%w: parameter %s contains control character %U", ErrInvalidURI, key, r)
				}
			}
		}
	}

	return nil
}

// newRequest creates a new HTTP request.
func (c *Client) newRequest(ctx context.Context, method string, u *url.URL) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrInvalidURI, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())

	return req, nil
}

// getJSON performs a single GET and returns the response body as raw JSON.
// Unsuccessful status codes are logged but not treated as errors: the body
// is still returned so callers can decide what it means.
func (c *Client) getJSON(ctx context.Context, u *url.URL) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, u)
	if err != nil {
		return nil, err
	}

	// The query string carries the hash, so only the path is logged.
	logger := c.logger.With("path", u.Path, "request_id", req.Header.Get("X-Request-Id"))
	logger.Debug("GET")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error repeats the full URL, drop it.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%w: GET %s: %w", ErrTransport, u.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrTransport, u.Path, err)
	}
	logger.Debug("response", "status", resp.StatusCode, "bytes", len(body))

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s returned %d with a non JSON body", ErrDecode, u.Path, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var status apiStatus
		_ = json.Unmarshal(body, &status)
		logger.Warn(
			"unexpected status",
			"status", resp.StatusCode,
			"code", status.Code,
			"message", status.text(),
		)
	}

	return json.RawMessage(body), nil
}
