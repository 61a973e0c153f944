// Package mous talks to the A Map of Us memory API and turns its
// loosely-shaped JSON into canonical records ready for display.
package mous

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fxelysrism/a-map-of-us-bot/internal/core/ports"
)

const (
	// DefaultBaseURL is the public memory API.
	DefaultBaseURL = "https://api.amapof.us/mous"

	requestTimeout  = 15 * time.Second
	bodySnippetSize = 300
)

// fullRecordKeys: presence of any of these after unwrapping means the
// random endpoint already returned a full record, not an id stub.
var fullRecordKeys = []string{"text", "username", "memory_date"}

// Client is the adapter for the memory API. A single GET per call, no
// retries; callers decide whether a failure is dropped or reported.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

var _ ports.Source = (*Client)(nil)

// fetch issues one bounded GET and decodes the JSON body.
func (c *Client) fetch(ctx context.Context, url string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, bodySnippetSize))
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(snippet)}
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &TransportError{Err: err}
	}
	return payload, nil
}

// RandomRaw fetches the random endpoint without the id indirection.
func (c *Client) RandomRaw(ctx context.Context) (any, error) {
	return c.fetch(ctx, c.BaseURL+"/random")
}

// ByID fetches a single record by id.
func (c *Client) ByID(ctx context.Context, id string) (any, error) {
	return c.fetch(ctx, c.BaseURL+"/"+id)
}

// Random resolves a full random record. The random endpoint sometimes
// returns only {"id": "..."}; in that case a second fetch by id follows.
func (c *Client) Random(ctx context.Context) (any, error) {
	payload, err := c.RandomRaw(ctx)
	if err != nil {
		return nil, err
	}

	data := Unwrap(payload)
	for _, key := range fullRecordKeys {
		if _, ok := data[key]; ok {
			return payload, nil
		}
	}

	id := ""
	if m, ok := payload.(map[string]any); ok {
		if v, ok := firstPresent(m, idKeys); ok {
			id = stringify(v)
		}
	}
	if id == "" {
		return nil, &ShapeError{Payload: payload}
	}

	return c.ByID(ctx, id)
}
