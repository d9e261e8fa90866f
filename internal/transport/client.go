// Package transport is the JSON HTTP layer under the task repository. It
// injects the bearer credential from the session store on every call, applies
// one bounded timeout per request, and never retries.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"task-manager/client/internal/session"
)

const defaultTimeout = 30 * time.Second

type Config struct {
	BaseURL string
	Timeout time.Duration

	// RateLimit throttles outbound requests when non-nil. Waiting is still
	// bounded by the request context.
	RateLimit *rate.Limiter
}

type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
	limiter *rate.Limiter
	log     *logrus.Logger
}

func NewClient(config Config, store session.Store, log *logrus.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		limiter: config.RateLimit,
		log:     log,
	}
}

// Do sends one request and decodes a 2xx JSON response into out (skipped when
// out is nil or the body is empty). A non-2xx status becomes *APIError, a
// failure to get any response becomes *RequestError.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &RequestError{Method: method, Path: path, Err: err}
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := ""
	if id, err := uuid.NewV4(); err == nil {
		requestID = id.String()
		req.Header.Set("X-Request-ID", requestID)
	}

	// The store is read on every call; a missing credential is allowed here
	// and left for the server to judge.
	token, err := c.store.Token(ctx)
	switch {
	case err == nil && token != "":
		req.Header.Set("Authorization", "Bearer "+token)
	case err != nil && !errors.Is(err, session.ErrNoCredential):
		return fmt.Errorf("failed to read session credential: %w", err)
	}

	entry := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})
	entry.Debug("sending api request")

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Error("api request failed before a response arrived")
		return &RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		entry.WithError(err).Error("failed to read api response body")
		return &RequestError{Method: method, Path: path, Err: err}
	}

	entry = entry.WithField("status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			RequestID:  requestID,
		}
		// Best effort: an unparsable error body still yields a usable APIError.
		_ = json.Unmarshal(data, &apiErr.Payload)
		entry.WithField("error", apiErr.Message()).Warn("api request rejected")
		return apiErr
	}

	entry.Debug("api request completed")

	if out == nil || len(data) == 0 || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
