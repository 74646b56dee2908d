package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ems/internal/domain/records"
	"ems/internal/platform/config"
)

// Client is a JSON client for the EMS REST backend. Resource families hang
// off it and satisfy the collaborator interfaces of the records store.
type Client struct {
	base  string
	http  *http.Client
	token func() string
}

// New builds a client rooted at the configured base URL. token supplies the
// current session token per request; it may return "" before login.
func New(cfg config.Config, token func() string) *Client {
	return &Client{
		base:  strings.TrimRight(cfg.APIBaseURL, "/") + "/api",
		http:  &http.Client{Timeout: cfg.APITimeout},
		token: token,
	}
}

// Collaborators bundles the resource families for the records store.
func (c *Client) Collaborators() records.Collaborators {
	return records.Collaborators{
		Attendance: attendanceAPI{c},
		Leave:      leaveAPI{c},
		Tasks:      taskAPI{c},
		Employees:  employeeAPI{c},
	}
}

// APIError is a non-2xx backend response other than 401.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// do performs one JSON round trip. A 401 is returned as the session-expired
// sentinel so the records store can treat it as fatal.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.roundTrip(req, out)
}

// roundTrip sends a prepared request with the session token attached and
// decodes the response into out.
func (c *Client) roundTrip(req *http.Request, out any) error {
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Token "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return records.ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Detail: errorDetail(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorDetail extracts the backend's error message, which ships under either
// "detail" or "error" depending on the endpoint.
func errorDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Error
}
