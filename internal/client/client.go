// Package client is a Go client for the meal planner HTTP API. Login returns an explicit
// Session; every call goes through it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"meal-planner/internal/httpapi"
	"meal-planner/internal/httpapi/dto"
	"meal-planner/internal/logging"
	"meal-planner/internal/shopping"

	"github.com/charmbracelet/log"
	"github.com/patrickmn/go-cache"
)

const (
	// DefaultCacheTTL is how long units and ingredients are served from the reference cache.
	DefaultCacheTTL = 10 * time.Minute

	cacheKeyUnits       = "units"
	cacheKeyIngredients = "ingredients"
)

var (
	// ErrUnauthorized matches APIErrors with status 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches APIErrors with status 404.
	ErrNotFound = errors.New("not found")
	// ErrSuperseded is returned by RefreshShoppingList when a newer refresh was started
	// before this one finished.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Is lets callers test APIErrors against ErrUnauthorized and ErrNotFound.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Options configure Login.
type Options struct {
	HTTPClient *http.Client
	CacheTTL   time.Duration
}

// Session is an authenticated connection to the API. The session cookie lives in the HTTP
// client's jar and the CSRF token is sent on every mutating request.
type Session struct {
	baseURL   string
	http      *http.Client
	mu        sync.RWMutex
	csrf      string
	UserID    int64
	Username  string
	ExpiresAt time.Time

	cache   *cache.Cache
	tracker shopping.RequestTracker
	logger  *log.Logger
}

// Login authenticates against baseURL and returns the session described by the login
// response.
func Login(ctx context.Context, baseURL, username, password string, opts Options) (*Session, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		copied := *httpClient
		copied.Jar = jar
		httpClient = &copied
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	s := &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		cache:   cache.New(ttl, ttl*2),
		logger:  logging.New("client"),
	}

	var body dto.SessionResponse
	resp, err := s.send(ctx, http.MethodPost, "/api/login", nil, dto.Credentials{Username: username, Password: password}, &body)
	if err != nil {
		return nil, err
	}

	if s.CSRFToken() == "" {
		s.setCSRF(body.CSRFToken)
	}
	if s.CSRFToken() == "" {
		return nil, errors.New("login response carried no CSRF token")
	}
	s.UserID = body.UserID
	s.Username = body.Username
	if t, err := time.Parse(time.RFC3339, body.ExpiresAt); err == nil {
		s.ExpiresAt = t
	}

	s.logger.Debug("logged in", "user", s.Username, "server", s.baseURL)
	return s, nil
}

// Close logs out and forgets the cached reference data.
func (s *Session) Close(ctx context.Context) error {
	s.cache.Flush()
	_, err := s.send(ctx, http.MethodPost, "/api/logout", nil, nil, nil)
	return err
}

// Check reports whether the server still accepts the session.
func (s *Session) Check(ctx context.Context) (bool, error) {
	var body dto.SessionResponse
	if _, err := s.send(ctx, http.MethodGet, "/api/auth/session", nil, nil, &body); err != nil {
		return false, err
	}
	return body.Authenticated, nil
}

func (s *Session) send(ctx context.Context, method, path string, query url.Values, in, out any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	u := s.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		if token := s.CSRFToken(); token != "" {
			req.Header.Set(httpapi.CSRFHeader, token)
		}
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e dto.ErrorResponse
		if b, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
			if json.Unmarshal(b, &e) == nil && e.Error != "" {
				apiErr.Message = e.Error
			} else {
				apiErr.Message = strings.TrimSpace(string(b))
			}
		}
		return resp, apiErr
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	// A refreshed token wins over the one we hold.
	if token := resp.Header.Get(httpapi.CSRFHeader); token != "" {
		s.setCSRF(token)
	}
	return resp, nil
}

// CSRFToken returns the token sent on mutating requests.
func (s *Session) CSRFToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.csrf
}

func (s *Session) setCSRF(token string) {
	s.mu.Lock()
	s.csrf = token
	s.mu.Unlock()
}
