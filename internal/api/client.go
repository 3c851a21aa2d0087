// Package api wraps the FindMyHome backend: one typed method per endpoint,
// uniform error normalization, bearer auth from the session store.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/findmyhome/internal/prefs"
)

// Error is a non-2xx response. Detail comes from the body's `detail` or
// `message` field, falling back to the HTTP status text, so the UI always
// has something to show.
type Error struct {
	Status     int
	Detail     string
	UserStatus string // structured status field, when the backend sends one
	Body       []byte
}

func (e *Error) Error() string { return e.Detail }

// IsAuthError reports whether err is a rejected-credential response, which
// forces the session back to the login step.
func IsAuthError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// TokenSource supplies the current bearer token; empty means unauthenticated.
type TokenSource interface {
	Token() string
}

// Client talks to one backend base URL.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// RequestApproval submits an email to the approval queue. The reason is
// optional and omitted when blank.
func (c *Client) RequestApproval(ctx context.Context, email, reason string) (string, error) {
	payload := map[string]string{"email": email}
	if reason != "" {
		payload["reason"] = reason
	}
	var out ack
	if err := c.do(ctx, http.MethodPost, "/request-approval", payload, false, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Signup creates a password for an approved email.
func (c *Client) Signup(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var out ack
	if err := c.do(ctx, http.MethodPost, "/signup", payload, false, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/login", payload, false, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var out Profile
	err := c.do(ctx, http.MethodGet, "/profile", nil, true, &out)
	return out, err
}

func (c *Client) MyChats(ctx context.Context) ([]ChatSession, error) {
	var out []ChatSession
	err := c.do(ctx, http.MethodGet, "/my-chats", nil, true, &out)
	return out, err
}

// MyPreferences returns nil without error when the user has not saved any.
func (c *Client) MyPreferences(ctx context.Context) (*prefs.Preferences, error) {
	var out struct {
		Preferences *prefs.Preferences `json:"preferences"`
	}
	if err := c.do(ctx, http.MethodGet, "/my-preferences", nil, true, &out); err != nil {
		return nil, err
	}
	return out.Preferences, nil
}

func (c *Client) SavePreferences(ctx context.Context, p prefs.Preferences) error {
	return c.do(ctx, http.MethodPost, "/save-preferences", p, true, nil)
}

// StartRecommendations kicks off a recommendation run from the saved
// preferences. The request body is an empty object by contract.
func (c *Client) StartRecommendations(ctx context.Context) (RecommendationRun, error) {
	var out RecommendationRun
	err := c.do(ctx, http.MethodPost, "/initial-preferences", struct{}{}, true, &out)
	return out, err
}

// do runs one request. On 2xx the body is decoded into out; a body that is
// not valid JSON is treated as an empty object, so callers must tolerate
// zero values. On non-2xx it returns *Error.
func (c *Client) do(ctx context.Context, method, path string, payload any, authed bool, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if authed && c.tokens != nil {
		if t := c.tokens.Token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Body: raw}
		var fields struct {
			Detail  string `json:"detail"`
			Message string `json:"message"`
			Status  string `json:"status"`
		}
		// Unparseable bodies stay empty; the fallbacks below cover them.
		_ = json.Unmarshal(raw, &fields)
		apiErr.Detail = fields.Detail
		if apiErr.Detail == "" {
			apiErr.Detail = fields.Message
		}
		if apiErr.Detail == "" {
			apiErr.Detail = http.StatusText(resp.StatusCode)
		}
		apiErr.UserStatus = fields.Status
		c.log.Warn("api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail))
		return apiErr
	}

	c.log.Debug("api ok",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode))

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// Malformed success bodies act as empty objects by contract.
		return nil
	}
	return nil
}
