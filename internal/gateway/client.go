// Package gateway wraps the remote auction API, one method per call. The
// gateway owns no state: the current access token is read from the session
// store at call time, and a rotated token in a response is written back
// before the method returns, so the next call observes the freshest token.
package gateway

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

	"github.com/daoleviethoang/friendly-frontend/internal/config"
	"github.com/daoleviethoang/friendly-frontend/internal/logger"
	"github.com/daoleviethoang/friendly-frontend/internal/session"
)

// APIError is a remote-rejected request (4xx/5xx with a message body).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: remote rejected (%d): %s", e.Status, e.Message)
}

var ErrEmptyResponse = errors.New("gateway: empty response body")

type Client struct {
	baseURL  string
	http     *http.Client
	store    session.Store
	log      logger.Logger
	pageSize int
}

func New(cfg *config.Config, store session.Store, log logger.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.APIHost, "/"),
		http:     &http.Client{Timeout: cfg.HTTPTimeout},
		store:    store,
		log:      log,
		pageSize: cfg.PageSize,
	}
}

// responseHeader is the rotation side channel: any authenticated response
// may carry a fresh access token here.
type responseHeader struct {
	AccessToken string `json:"accessToken,omitempty"`
}

type envelope struct {
	ResponseHeader responseHeader  `json:"responseHeader"`
	ResponseBody   json.RawMessage `json:"responseBody"`
}

type remoteError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one call. With authed set, the request carries the stored
// bearer token and the response is unwrapped from the rotation envelope.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		creds, err := c.store.Credentials(ctx)
		if err != nil {
			return fmt.Errorf("gateway: %s %s: %w", method, path, err)
		}
		req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("gateway: read response: %w", err)
	}

	if res.StatusCode >= http.StatusBadRequest {
		return c.rejection(res.StatusCode, data)
	}

	if !authed {
		if out == nil {
			return nil
		}
		if len(data) == 0 {
			return ErrEmptyResponse
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("gateway: decode response: %w", err)
		}
		return nil
	}

	var env envelope
	if len(data) > 0 {
		if err := json.Unmarshal(data, &env); err != nil {
			return fmt.Errorf("gateway: decode envelope: %w", err)
		}
	}

	// Write the rotation back before returning control to the caller's
	// watcher loop, so even a concurrently dispatched call sees it.
	if token := env.ResponseHeader.AccessToken; token != "" {
		if err := c.store.UpdateAccessToken(ctx, token); err != nil {
			c.log.Warn("failed to persist rotated access token", "error", err)
		} else {
			c.log.Debug("access token rotated", "path", path)
		}
	}

	if out == nil {
		return nil
	}
	if len(env.ResponseBody) == 0 {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal(env.ResponseBody, out); err != nil {
		return fmt.Errorf("gateway: decode response body: %w", err)
	}
	return nil
}

func (c *Client) rejection(status int, data []byte) error {
	var remote remoteError
	_ = json.Unmarshal(data, &remote)

	message := remote.Message
	if message == "" {
		message = remote.Error
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{Status: status, Message: message}
}

func pageQuery(pageZeroBased, size int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprint(pageZeroBased))
	q.Set("size", fmt.Sprint(size))
	return q
}
