// Package client talks to the diary API on behalf of the signed-in user.
package client

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

	"go.uber.org/zap"

	"dailythought/internal/models"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialProvider
	logger  *zap.Logger
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option { return func(cl *Client) { cl.http = c } }

func WithLogger(l *zap.Logger) Option { return func(cl *Client) { cl.logger = l } }

// WithClock overrides "today" for client-side date validation.
func WithClock(now func() time.Time) Option { return func(cl *Client) { cl.now = now } }

func New(baseURL string, creds CredentialProvider, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		creds:   creds,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListEntries(ctx context.Context) ([]models.DiaryEntry, error) {
	var out []models.DiaryEntry
	if err := c.do(ctx, http.MethodGet, "/api/diaries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEntry(ctx context.Context, id string) (models.DiaryEntry, error) {
	var out models.DiaryEntry
	err := c.do(ctx, http.MethodGet, "/api/diaries/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateEntry(ctx context.Context, in models.NewEntry) (models.DiaryEntry, error) {
	if in.Mood == "" {
		in.Mood = models.DefaultMood
	}
	if in.MoodIntensity == 0 {
		in.MoodIntensity = models.DefaultIntensity
	}
	if err := ValidateNewEntry(in, c.now()); err != nil {
		return models.DiaryEntry{}, err
	}
	var out models.DiaryEntry
	err := c.do(ctx, http.MethodPost, "/api/diaries", in, &out)
	return out, err
}

func (c *Client) UpdateEntry(ctx context.Context, id string, changes models.EntryChanges) (models.DiaryEntry, error) {
	if err := ValidateChanges(changes); err != nil {
		return models.DiaryEntry{}, err
	}
	var out models.DiaryEntry
	err := c.do(ctx, http.MethodPut, "/api/diaries/"+url.PathEscape(id), changes, &out)
	return out, err
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/diaries/"+url.PathEscape(id), nil, nil)
}

func (c *Client) MoodAnalytics(ctx context.Context) (models.MoodAnalyticsSnapshot, error) {
	var out models.MoodAnalyticsSnapshot
	path := "/api/mood-analytics?local_date=" + c.now().Format(models.DateLayout)
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	token, err := c.creds.Credential(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return ErrAuthExpired
		}
		return fmt.Errorf("credential: %w", err)
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, ErrTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return c.statusError(method, path, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Debug("decode response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: decode response: %w", method, path, ErrTransient)
	}
	return nil
}

func (c *Client) statusError(method, path string, resp *http.Response) error {
	var eb errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &eb); err != nil || eb.Error == "" {
		eb.Error = strings.TrimSpace(string(raw))
	}

	c.logger.Debug("request rejected",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("error", eb.Error),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrAuthExpired
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		msg := eb.Error
		if msg == "" {
			msg = "invalid request"
		}
		return &ValidationError{Field: eb.Field, Message: msg}
	default:
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, ErrTransient)
	}
}
