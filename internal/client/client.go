// Package client is the HTTP client for the intake API. It backs the
// terminal wizard and the triage commands.
//
// Requests are never retried: a failed submission surfaces to the caller,
// who decides whether to submit again.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"zenvor/internal/domain/demo"
	"zenvor/internal/domain/intake"
	"zenvor/internal/domain/lead"
	"zenvor/internal/pkg/validator"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 20 * time.Second

const apiPrefix = "/api/v1"

type Client struct {
	baseURL    string
	adminToken string
	language   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAdminToken sets the bearer token sent to triage endpoints.
func WithAdminToken(token string) Option {
	return func(c *Client) { c.adminToken = token }
}

// WithLanguage sets the Accept-Language header so server messages come
// back localized.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SubmitLead posts a finished wizard.
func (c *Client) SubmitLead(ctx context.Context, req *lead.SubmitRequest) (*intake.SubmitResult, error) {
	var res intake.SubmitResult
	if err := c.do(ctx, http.MethodPost, "/leads/submit", nil, req, &res, false); err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitDemo posts a finished demo form.
func (c *Client) SubmitDemo(ctx context.Context, req *demo.SubmitRequest) (*intake.SubmitResult, error) {
	var res intake.SubmitResult
	if err := c.do(ctx, http.MethodPost, "/demo-requests/submit", nil, req, &res, false); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListLeads(ctx context.Context, q lead.ListQuery) ([]lead.Lead, error) {
	var out []lead.Lead
	err := c.do(ctx, http.MethodGet, "/admin/leads", listValues(string(q.Status), q.Limit, q.Offset), nil, &out, true)
	return out, err
}

func (c *Client) GetLead(ctx context.Context, id string) (*lead.Lead, error) {
	var out lead.Lead
	if err := c.do(ctx, http.MethodGet, "/admin/leads/"+url.PathEscape(id), nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLeadStatus sends a status change. Nil AssignedTo or InternalNote
// clears the stored value.
func (c *Client) UpdateLeadStatus(ctx context.Context, req *lead.UpdateStatusRequest) (*intake.SubmitResult, error) {
	var res intake.SubmitResult
	if err := c.do(ctx, http.MethodPatch, "/admin/leads/"+url.PathEscape(req.ID)+"/status", nil, req, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) LeadStats(ctx context.Context) (lead.StatsResponse, error) {
	var out lead.StatsResponse
	err := c.do(ctx, http.MethodGet, "/admin/leads/stats", nil, nil, &out, true)
	return out, err
}

func (c *Client) ListDemos(ctx context.Context, q demo.ListQuery) ([]demo.Request, error) {
	var out []demo.Request
	err := c.do(ctx, http.MethodGet, "/admin/demo-requests", listValues(string(q.Status), q.Limit, q.Offset), nil, &out, true)
	return out, err
}

func (c *Client) GetDemo(ctx context.Context, id string) (*demo.Request, error) {
	var out demo.Request
	if err := c.do(ctx, http.MethodGet, "/admin/demo-requests/"+url.PathEscape(id), nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDemoStatus(ctx context.Context, req *demo.UpdateStatusRequest) (*intake.SubmitResult, error) {
	var res intake.SubmitResult
	if err := c.do(ctx, http.MethodPatch, "/admin/demo-requests/"+url.PathEscape(req.ID)+"/status", nil, req, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DemoStats(ctx context.Context) (demo.StatsResponse, error) {
	var out demo.StatsResponse
	err := c.do(ctx, http.MethodGet, "/admin/demo-requests/stats", nil, nil, &out, true)
	return out, err
}

func listValues(status string, limit, offset int) url.Values {
	v := url.Values{}
	if status != "" {
		v.Set("status", status)
	}
	if limit != 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if offset != 0 {
		v.Set("offset", strconv.Itoa(offset))
	}
	return v
}

// --- HTTP helpers ---

// APIError is returned when the API answers with an error envelope. It
// unwraps to the matching intake sentinel or validation error, so callers
// can use errors.Is and errors.As as they would against the services.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("intake api: %s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("intake api: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Code {
	case intake.CodeDuplicateSubmission:
		return intake.ErrDuplicateSubmission
	case intake.CodeNotFound:
		return intake.ErrNotFound
	case intake.CodeValidation:
		return &validator.ValidationError{Fields: e.Fields}
	}
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, admin bool) (*http.Request, error) {
	u := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if admin && c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, admin bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("intake api: marshal: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reqBody, admin)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("intake api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseError(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("intake api: %s %s: decode: %w", method, path, err)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("intake api: %s %s: decode data: %w", method, path, err)
		}
	}
	return nil
}

func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var env envelope
	if json.Unmarshal(body, &env) == nil && env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		if len(env.Error.Details) > 0 {
			_ = json.Unmarshal(env.Error.Details, &apiErr.Fields)
		}
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}
