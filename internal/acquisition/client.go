package acquisition

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

	"wsn_dashboard/internal/models"
)

// Graph options understood by /post_graphTime.
const (
	GraphOptionX   = "X only"
	GraphOptionY   = "Y only"
	GraphOptionZ   = "Z only"
	GraphOptionSum = "sum"
)

// maxBodyBytes caps a decoded response; graph payloads carry up to 9600 points.
const maxBodyBytes = 8 << 20

// Observer receives the latency and outcome of every backend call.
type Observer interface {
	ObserveFetch(op string, d time.Duration, err error)
}

// Client talks to the acquisition backend.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	observer Observer
}

// NewClient builds a client for baseURL. A zero timeout means the request may
// wait as long as the transport allows.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse acquisition base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("acquisition base url %q must be absolute", baseURL)
	}
	return &Client{baseURL: u, http: &http.Client{Timeout: timeout}}, nil
}

// WithObserver attaches o to every subsequent call.
func (c *Client) WithObserver(o Observer) *Client {
	c.observer = o
	return c
}

// StartPath and StopPath build the per-mode endpoint names, e.g. /post_monStart.
func StartPath(mode string) string { return "/post_" + mode + "Start" }
func StopPath(mode string) string  { return "/post_" + mode + "Stop" }

// Poll requests iteration n from a start endpoint.
func (c *Client) Poll(ctx context.Context, path string, n int) (models.PollResponse, error) {
	var resp models.PollResponse
	err := c.post(ctx, "start", path, map[string]int{"value": n}, &resp)
	return resp, err
}

// Stop calls a stop endpoint for the final snapshot.
func (c *Client) Stop(ctx context.Context, path string) (models.PollResponse, error) {
	var resp models.PollResponse
	err := c.post(ctx, "stop", path, struct{}{}, &resp)
	return resp, err
}

// GraphTime fetches the last recorded time series for one axis option.
func (c *Client) GraphTime(ctx context.Context, option string) (models.GraphData, error) {
	var data models.GraphData
	err := c.post(ctx, "graph_time", "/post_graphTime", map[string]string{"value": option}, &data)
	return data, err
}

// GraphFreq fetches the spectrum of the last recording.
func (c *Client) GraphFreq(ctx context.Context) (models.GraphData, error) {
	var data models.GraphData
	err := c.post(ctx, "graph_freq", "/post_graphFreq", struct{}{}, &data)
	return data, err
}

func (c *Client) post(ctx context.Context, op, path string, body, dst any) (err error) {
	if c.observer != nil {
		began := time.Now()
		defer func() { c.observer.ObserveFetch(op, time.Since(began), err) }()
	}

	endpoint := c.baseURL.JoinPath(path).String()
	fail := func(status int, err error) error {
		return &FetchError{Op: op, Endpoint: path, StatusCode: status, Err: err}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fail(0, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		return fail(res.StatusCode, ErrUnexpectedStatus)
	}
	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fail(res.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
