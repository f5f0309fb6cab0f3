// Package gateway wraps the remote GENET REST API. It owns the process-wide
// session capability (the sessionid and csrftoken cookies live in its jar);
// stores depend on it only through the request verbs and never touch
// cookies directly.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.genet.or.ke/api".
	BaseURL string
	// Timeout bounds every request; the stores carry no timeout logic of
	// their own.
	Timeout time.Duration
	// CSRFCookie and CSRFHeader default to the Django names
	// ("csrftoken" / "X-CSRFToken").
	CSRFCookie string
	CSRFHeader string
	// LegacyTokenFile optionally points at a bearer token left behind by
	// the pre-session JWT builds. It is attached until the server answers
	// 401, at which point it is cleared and never retried.
	LegacyTokenFile string
}

// Client is the HTTP gateway. One instance per process; safe for
// concurrent use by all stores.
type Client struct {
	base       *url.URL
	http       *http.Client
	csrfCookie string
	csrfHeader string
	log        *zap.Logger

	mu          sync.Mutex
	legacyToken string
}

// New builds the gateway with a cookie jar for the session and CSRF cookies.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", cfg.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	csrfCookie := cfg.CSRFCookie
	if csrfCookie == "" {
		csrfCookie = "csrftoken"
	}
	csrfHeader := cfg.CSRFHeader
	if csrfHeader == "" {
		csrfHeader = "X-CSRFToken"
	}

	c := &Client{
		base:       base,
		http:       &http.Client{Jar: jar, Timeout: timeout},
		csrfCookie: csrfCookie,
		csrfHeader: csrfHeader,
		log:        logger,
	}

	if cfg.LegacyTokenFile != "" {
		if raw, err := os.ReadFile(cfg.LegacyTokenFile); err == nil {
			c.legacyToken = strings.TrimSpace(string(raw))
			if c.legacyToken != "" {
				logger.Info("loaded legacy auth token; it will be dropped on the first 401",
					zap.String("file", cfg.LegacyTokenFile))
			}
		}
	}

	return c, nil
}

// EstablishCSRF asks the server to set the CSRF cookie. The token is
// retained in the jar and attached to subsequent mutating requests.
func (c *Client) EstablishCSRF(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/auth/csrf/", "", nil, nil)
}

// Get issues a GET and decodes the JSON response into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// Post issues a JSON POST and decodes the response into out (in and out may
// be nil).
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, out)
}

// Patch issues a JSON PATCH and decodes the response into out (in and out
// may be nil).
func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, http.MethodPatch, path, "application/json", body, out)
}

// PostMultipart issues a multipart/form-data POST with the given form fields
// plus one file part, and decodes the response into out.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	fw, err := mw.CreateFormFile(fileField, filename)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return fmt.Errorf("copy file part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, mw.FormDataContentType(), &buf, out)
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// csrfToken reads the retained CSRF cookie from the jar, if any.
func (c *Client) csrfToken() string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == c.csrfCookie {
			return ck.Value
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	u := *c.base
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse request path: %w", err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + ref.Path
	u.RawQuery = ref.RawQuery

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if method != http.MethodGet {
		if token := c.csrfToken(); token != "" {
			req.Header.Set(c.csrfHeader, token)
		}
	}
	c.mu.Lock()
	if c.legacyToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.legacyToken)
	}
	c.mu.Unlock()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return &Error{Kind: KindOperational, Message: ""}
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(resp, method, path, reqID)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// classify maps a non-2xx response into the closed error taxonomy. This is
// the single interceptor point: auth failures also clear any legacy token
// residue, and nothing is ever retried.
func (c *Client) classify(resp *http.Response, method, path, reqID string) error {
	detail := readDetail(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.clearLegacyToken()
		c.log.Debug("session expired or not authenticated",
			zap.String("path", path),
			zap.String("request_id", reqID))
		return &Error{Kind: KindUnauthenticated, Status: resp.StatusCode, Message: detail}
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: resp.StatusCode, Message: detail}
	case resp.StatusCode == http.StatusForbidden:
		c.log.Warn("access forbidden; check CSRF token or permissions",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.String("detail", detail))
		return &Error{Kind: KindOperational, Status: resp.StatusCode, Message: detail}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &Error{Kind: KindValidation, Status: resp.StatusCode, Message: detail}
	default:
		c.log.Warn("server error",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Int("status", resp.StatusCode))
		return &Error{Kind: KindOperational, Status: resp.StatusCode, Message: detail}
	}
}

func (c *Client) clearLegacyToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.legacyToken != "" {
		c.legacyToken = ""
		c.log.Info("cleared legacy auth token after 401")
	}
}

// readDetail pulls the server's human-readable message out of an error body.
// The API uses both "message" and "detail" depending on the endpoint.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Detail
}
