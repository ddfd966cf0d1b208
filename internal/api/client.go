// Package api is the HTTP client for the arXiv CS expert backend.
package api

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

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "http://localhost:8000"

// maxErrorBody bounds how much of a failed response is read for its detail.
const maxErrorBody = 64 << 10

type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	validate  *validator.Validate
	userAgent string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request, whichever http.Client ends up in use.
// Zero leaves requests unbounded so the backend's own timeout decides.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = max(0, d) }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = strings.TrimSpace(ua) }
}

// New returns a client for the backend at baseURL. An empty baseURL means
// DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url: missing host in %q", base)
	}
	c := &Client{
		baseURL:   strings.TrimRight(u.String(), "/"),
		http:      &http.Client{},
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		userAgent: "arxivcs",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// Chat sends POST /chat.
func (c *Client) Chat(ctx context.Context, query string) (ChatResponse, error) {
	var out ChatResponse
	if err := c.postJSON(ctx, "chat", "/chat", ChatRequest{Query: query}, &out); err != nil {
		return ChatResponse{}, err
	}
	return out, nil
}

// Search sends POST /search. A null body decodes to an empty slice.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Paper, error) {
	var out []Paper
	req := SearchRequest{Query: query, MaxResults: maxResults}
	if err := c.postJSON(ctx, "search", "/search", req, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Paper{}
	}
	return out, nil
}

// Visualize sends POST /visualize with the concept trimmed.
func (c *Client) Visualize(ctx context.Context, concept string) (VisualizeResponse, error) {
	var out VisualizeResponse
	req := VisualizeRequest{Concept: strings.TrimSpace(concept)}
	if err := c.postJSON(ctx, "visualize", "/visualize", req, &out); err != nil {
		return VisualizeResponse{}, err
	}
	if strings.TrimSpace(out.Image) == "" {
		return VisualizeResponse{}, fmt.Errorf("visualize: %w: missing image", ErrDecode)
	}
	return out, nil
}

// ImageURL resolves a bare filename returned by the backend to
// {base}/images/{name}. Absolute URLs are returned as is.
func (c *Client) ImageURL(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	return c.baseURL + "/images/" + url.PathEscape(strings.TrimPrefix(name, "/"))
}

// FetchImage streams GET /images/{name} into w.
func (c *Client) FetchImage(ctx context.Context, name string, w io.Writer) (int64, error) {
	const op = "fetch image"
	target := c.ImageURL(name)
	if target == "" {
		return 0, fmt.Errorf("%s: %w: empty image name", op, ErrInvalidRequest)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(op, resp); err != nil {
		return 0, err
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// Ping calls GET / and returns the backend's status message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	const op = "ping"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	var out HealthResponse
	if err := c.do(op, req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, in, out any) error {
	if err := c.validate.Struct(in); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidRequest, err)
	}
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out any) error {
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("op", op).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("backend call")

	if err := checkStatus(op, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: %w: empty body", op, ErrDecode)
		}
		return fmt.Errorf("%s: %w: %v", op, ErrDecode, err)
	}
	return nil
}

func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	se := &StatusError{Op: op, Code: resp.StatusCode}
	var body struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		se.Detail = detailText(body.Detail)
		if se.Detail == "" {
			se.Detail = strings.TrimSpace(body.Error)
		}
	}
	return se
}

// detailText flattens FastAPI's detail, which is a string for HTTPException
// and a list of {loc, msg} objects for 422 validation errors.
func detailText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if json.Unmarshal(raw, &text) == nil {
		return strings.TrimSpace(text)
	}
	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if json.Unmarshal(raw, &items) == nil && len(items) > 0 {
		parts := make([]string, 0, len(items))
		for _, it := range items {
			loc := make([]string, len(it.Loc))
			for i, l := range it.Loc {
				loc[i] = fmt.Sprint(l)
			}
			if len(loc) == 0 {
				parts = append(parts, it.Msg)
				continue
			}
			parts = append(parts, strings.Join(loc, ".")+": "+it.Msg)
		}
		return strings.Join(parts, "; ")
	}
	return strings.TrimSpace(string(raw))
}
