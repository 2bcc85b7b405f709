package api

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

	"console/internal/auth"
	"console/internal/domain"
	"console/internal/utils"

	"github.com/google/uuid"
)

// Client is the one external interface of every list page: authenticated
// requests against the suite's REST API, decoded into the pagination
// envelope or the error taxonomy.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Auth    *auth.Context
}

func NewClient(baseURL string, timeout time.Duration, authCtx *auth.Context) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Auth:    authCtx,
	}
}

// List fetches one page of a collection. query comes pre-serialized from
// the list controller.
func (c *Client) List(ctx context.Context, path string, query url.Values) (Page, error) {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return Page{}, err
	}
	p, err := decodePage(body)
	if err != nil {
		return Page{}, domain.DecodeError{Path: path, Err: err}
	}
	return p, nil
}

// Get fetches one entity by id.
func (c *Client) Get(ctx context.Context, path, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, joinPath(path, id), nil, nil)
}

// Fetch GETs an arbitrary path and hands back the raw body. Dashboard
// and lookup endpoints return ad-hoc shapes, not the list envelope.
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Put PUTs against a full path, for action routes like .../:id/approve.
func (c *Client) Put(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, payload)
}

// Create POSTs a new entity. The server assigns id and default status.
func (c *Client) Create(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, payload)
}

// Update PUTs a full payload keyed by id.
func (c *Client) Update(ctx context.Context, path, id string, payload any) (json.RawMessage, error) {
	return c.Put(ctx, joinPath(path, id), payload)
}

// Patch sends a partial payload keyed by id.
func (c *Client) Patch(ctx context.Context, path, id string, payload any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, joinPath(path, id), nil, payload)
}

// Delete removes an entity; 200 and 204 with empty body are both fine.
func (c *Client) Delete(ctx context.Context, path, id string) error {
	_, err := c.do(ctx, http.MethodDelete, joinPath(path, id), nil, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (json.RawMessage, error) {
	op := method + " " + path

	token, err := c.Auth.BearerToken()
	if err != nil {
		return nil, err
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal payload: %w", op, err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		utils.LogEvent(requestID, "api", "request_failed", op+" err="+err.Error())
		return nil, domain.TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.TransportError{Op: op, Err: err}
	}
	utils.LogRequest(requestID, method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, c.statusError(op, path, resp.StatusCode, body)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// statusError maps a non-2xx response to the domain taxonomy, surfacing
// the server's own message where one exists.
func (c *Client) statusError(op, path string, status int, body []byte) error {
	msg := serverMessage(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		c.Auth.NotifyUnauthenticated()
		return domain.UnauthenticatedError{Reason: msg}
	case status == http.StatusNotFound:
		return domain.NotFoundError{Resource: strings.Trim(path, "/")}
	case status == http.StatusConflict:
		return domain.ConflictError{Msg: msg}
	case status >= 400 && status < 500:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return domain.ValidationError{Msg: msg}
	default:
		return domain.TransportError{Op: op, Err: fmt.Errorf("status %d: %s", status, msg)}
	}
}

// serverMessage pulls the human-readable text out of an error body.
// The suite's newer endpoints use "detail", older ones "message" or
// "error"; all three are accepted.
func serverMessage(body []byte) string {
	var envelope struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	for _, s := range []string{envelope.Detail, envelope.Message, envelope.Error} {
		if strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func joinPath(path, id string) string {
	return strings.TrimRight(path, "/") + "/" + url.PathEscape(id)
}
