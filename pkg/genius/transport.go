package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// envelope is the root JSON document returned by the Genius API.
type envelope struct {
	Meta struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"meta"`
	Response json.RawMessage `json:"response"`

	// OAuth failures use a different shape.
	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// maxAPIResponseSize caps how much of an API response is read.
const maxAPIResponseSize = 4 << 20

// call makes a GET request to the Genius API and decodes the "response"
// member of the envelope into out.
//
// It handles:
// - Request construction with the bearer token
// - Envelope parsing (JSON)
// - Mapping error statuses to *Error
// - Context cancellation
func (c *Client) call(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.accessToken == "" {
		return ErrNoAccessToken
	}

	reqURL := strings.TrimRight(c.baseURL, "/") + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	c.logDebugf("genius: calling %s", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "verses/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logErrorf("genius: %s failed: %v", path, err)
		return &TransportError{URL: reqURL, Err: err}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseSize))
	_ = resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			c.logErrorf("genius: %s returned status %d", path, resp.StatusCode)
			return &TransportError{URL: reqURL, StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &Error{Status: resp.StatusCode, Message: env.Meta.Message}
		if apiErr.Message == "" {
			apiErr.Message = env.ErrorDescription
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}

	c.logDebugf("genius: %s succeeded", path)
	return nil
}
