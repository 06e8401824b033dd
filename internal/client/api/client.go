// Package api implements the HTTP client for the attendance server's JSON
// API. Every call carries a context and returns either a decoded response
// or an APIError carrying the server's message and status code.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type Status struct {
	WorkDate  string `json:"work_date"`
	Status    string `json:"status"`
	SessionID *int64 `json:"session_id"`
}

type PunchResult struct {
	Message   string `json:"message"`
	SessionID *int64 `json:"session_id"`
}

type ReportRow struct {
	WorkDate     string  `json:"work_date"`
	SessionID    *int64  `json:"session_id"`
	StartAt      *string `json:"start_at"`
	EndAt        *string `json:"end_at"`
	BreakSeconds int64   `json:"break_seconds"`
	WorkSeconds  int64   `json:"work_seconds"`
	NetSeconds   int64   `json:"net_seconds"`
}

type Report struct {
	Month string      `json:"month"`
	Rows  []ReportRow `json:"rows"`
}

type Break struct {
	ID           int64   `json:"id"`
	BreakStartAt string  `json:"break_start_at"`
	BreakEndAt   *string `json:"break_end_at"`
}

type breaksResponse struct {
	Breaks []Break `json:"breaks"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type breakCreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// do issues one JSON request and decodes the response into out (if non-nil).
// Non-2xx responses become an *APIError with the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var msg messageResponse
		if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil || msg.Message == "" {
			msg.Message = fmt.Sprintf("server returned %s", resp.Status)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Status(ctx context.Context) (*Status, error) {
	var s Status
	if err := c.do(ctx, http.MethodGet, "/api/attendance/status", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Punch(ctx context.Context, action string) (*PunchResult, error) {
	var r PunchResult
	body := map[string]string{"action": action}
	if err := c.do(ctx, http.MethodPost, "/api/attendance/punch", body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// MonthlyReport fetches the report for month ("YYYY-MM"); an empty month
// means the current one.
func (c *Client) MonthlyReport(ctx context.Context, month string) (*Report, error) {
	path := "/api/attendance/sessions"
	if month != "" {
		path += "?month=" + month
	}
	var r Report
	if err := c.do(ctx, http.MethodGet, path, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) ListBreaks(ctx context.Context, sessionID int64) ([]Break, error) {
	var r breaksResponse
	path := fmt.Sprintf("/api/attendance/sessions/%d/breaks", sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &r); err != nil {
		return nil, err
	}
	return r.Breaks, nil
}

func (c *Client) UpdateSession(ctx context.Context, sessionID int64, startAt, endAt string) (string, error) {
	var r messageResponse
	path := fmt.Sprintf("/api/attendance/sessions/%d", sessionID)
	body := map[string]string{"start_at": startAt, "end_at": endAt}
	if err := c.do(ctx, http.MethodPut, path, body, &r); err != nil {
		return "", err
	}
	return r.Message, nil
}

func (c *Client) AddBreak(ctx context.Context, sessionID int64, startAt, endAt string) (int64, error) {
	var r breakCreatedResponse
	path := fmt.Sprintf("/api/attendance/sessions/%d/breaks", sessionID)
	body := map[string]string{"break_start_at": startAt, "break_end_at": endAt}
	if err := c.do(ctx, http.MethodPost, path, body, &r); err != nil {
		return 0, err
	}
	return r.ID, nil
}

func (c *Client) UpdateBreak(ctx context.Context, breakID int64, startAt, endAt string) (string, error) {
	var r messageResponse
	path := fmt.Sprintf("/api/attendance/breaks/%d", breakID)
	body := map[string]string{"break_start_at": startAt, "break_end_at": endAt}
	if err := c.do(ctx, http.MethodPut, path, body, &r); err != nil {
		return "", err
	}
	return r.Message, nil
}

func (c *Client) DeleteBreak(ctx context.Context, breakID int64) (string, error) {
	var r messageResponse
	path := fmt.Sprintf("/api/attendance/breaks/%d", breakID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &r); err != nil {
		return "", err
	}
	return r.Message, nil
}
