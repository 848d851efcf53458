package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"expediente/internal/logger"
)

// Client talks JSON over HTTP to the narrative service. Requests are not
// retried and carry no auth; a non-2xx status is an error.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Log
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.New(),
	}
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("post %s: unexpected status %s", path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// StartGame asks the service to generate a fresh case.
func (c *Client) StartGame(ctx context.Context) (*Game, error) {
	var resp startGameResponse
	if err := c.post(ctx, "/start_game", nil, &resp); err != nil {
		return nil, err
	}
	c.log.Debug(fmt.Sprintf("game created [suspects:%d]", len(resp.Data.Suspects)))
	return &resp.Data, nil
}

// GeneratePortrait returns an image reference for a character description.
func (c *Client) GeneratePortrait(ctx context.Context, description string) (string, error) {
	var resp portraitResponse
	if err := c.post(ctx, "/generate_pfp", portraitRequest{Description: description}, &resp); err != nil {
		return "", err
	}
	return resp.Image, nil
}

func (c *Client) AskNarrator(ctx context.Context, req *NarratorRequest) (*NarratorResponse, error) {
	var resp NarratorResponse
	if err := c.post(ctx, "/ask/narrator", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AskSuspect(ctx context.Context, req *SuspectRequest) (string, error) {
	var resp suspectResponse
	if err := c.post(ctx, "/ask", req, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}
