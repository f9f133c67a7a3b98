// Package videogen talks to the external video generation service.
package videogen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const requestTimeout = 5 * time.Minute

// ErrUpstream wraps every failure reported by the video service.
var ErrUpstream = errors.New("video service error")

// Request is a video generation job.
type Request struct {
	Topic     string   `json:"topic"`
	Duration  int      `json:"duration"`
	KeyPoints []string `json:"key_points"`
	Style     string   `json:"style"`
}

// Video is an entry of the generated video history.
type Video struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type result struct {
	Success   bool   `json:"success"`
	VideoPath string `json:"videoPath"`
	Error     string `json:"error"`
}

// Client calls the video service. Requests are not retried.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Generate submits a job and returns the URL the finished video is served from.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	var res result
	if err := c.do(ctx, http.MethodPost, "/videogen", bytes.NewReader(body), &res); err != nil {
		return "", err
	}
	if !res.Success {
		return "", upstreamError(res.Error, "Unknown error occurred")
	}
	return c.baseURL + "/static/videos/" + res.VideoPath, nil
}

// List returns the videos the service has generated so far.
func (c *Client) List(ctx context.Context) ([]Video, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/videos", nil, &raw); err != nil {
		return nil, err
	}
	if t := bytes.TrimSpace(raw); len(t) == 0 || t[0] != '[' {
		return nil, fmt.Errorf("%w: Invalid response format", ErrUpstream)
	}

	var videos []Video
	if err := json.Unmarshal(raw, &videos); err != nil {
		return nil, fmt.Errorf("%w: Invalid response format", ErrUpstream)
	}
	return videos, nil
}

// Delete removes a generated video by name.
func (c *Client) Delete(ctx context.Context, name string) error {
	var res result
	if err := c.do(ctx, http.MethodDelete, "/api/videos/"+url.PathEscape(name), nil, &res); err != nil {
		return err
	}
	if !res.Success {
		return upstreamError(res.Error, "Failed to delete video")
	}
	return nil
}

// PlaybackURL turns a path from List into a URL the browser can open.
func (c *Client) PlaybackURL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return c.baseURL + "/" + strings.Replace(path, "./static/", "static/", 1)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: HTTP error! status: %d", ErrUpstream, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: invalid response: %v", ErrUpstream, err)
	}
	return nil
}

func upstreamError(msg, fallback string) error {
	if msg == "" {
		msg = fallback
	}
	return fmt.Errorf("%w: %s", ErrUpstream, msg)
}

// Message strips the sentinel prefix so handlers can show the service's own text.
func Message(err error) string {
	return strings.TrimPrefix(err.Error(), ErrUpstream.Error()+": ")
}
