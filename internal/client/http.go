package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alfredjeanlab/campus/internal/idgen"
	"github.com/alfredjeanlab/campus/internal/model"
)

// HTTPClient implements PortalClient using the portal's HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithTimeout sets a per-request timeout on the underlying *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient creates a client for the API rooted at baseURL
// (e.g. "http://localhost:8080/api"). When tokens yields a non-empty token
// an Authorization header is set on every request.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Jobs ---

func (c *HTTPClient) ListJobs(ctx context.Context) ([]model.Job, error) {
	return getList[model.Job](ctx, c, "/jobs")
}

func (c *HTTPClient) ListPostedJobs(ctx context.Context) ([]model.Job, error) {
	return getList[model.Job](ctx, c, "/hr/jobs")
}

func (c *HTTPClient) GetJob(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// --- Applications ---

// ListApplications lists applications to the HR user's jobs, narrowed to a
// single job when jobID is set.
func (c *HTTPClient) ListApplications(ctx context.Context, jobID string) ([]model.Application, error) {
	path := "/hr/applications"
	if jobID != "" {
		path = "/hr/jobs/" + url.PathEscape(jobID) + "/applications"
	}
	return getList[model.Application](ctx, c, path)
}

func (c *HTTPClient) ListMyApplications(ctx context.Context) ([]model.Application, error) {
	return getList[model.Application](ctx, c, "/student/applications")
}

func (c *HTTPClient) UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	body := map[string]string{"status": status.String()}
	var app model.Application
	if err := c.doJSON(ctx, http.MethodPatch, "/hr/applications/"+url.PathEscape(id)+"/status", body, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Apply submits an application. The request is validated first and nothing
// is sent when validation fails.
func (c *HTTPClient) Apply(ctx context.Context, req *ApplyRequest) (*model.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var app model.Application
	if err := c.doJSON(ctx, http.MethodPost, "/student/applications", req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *HTTPClient) WithdrawApplication(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/student/applications/"+url.PathEscape(id), nil, nil)
}

// --- Offers ---

// ListOffers lists the offers visible to the given role.
func (c *HTTPClient) ListOffers(ctx context.Context, role model.Role) ([]model.Offer, error) {
	var path string
	switch role {
	case model.RoleHR:
		path = "/hr/offers"
	case model.RoleOfficer:
		path = "/officer/offers"
	case model.RoleStudent:
		path = "/student/offers"
	default:
		return nil, fmt.Errorf("list offers: unknown role %q", role)
	}
	return getList[model.Offer](ctx, c, path)
}

func (c *HTTPClient) RespondToOffer(ctx context.Context, id string, status model.OfferStatus) (*model.Offer, error) {
	body := map[string]string{"status": status.String()}
	var offer model.Offer
	if err := c.doJSON(ctx, http.MethodPost, "/student/offers/"+url.PathEscape(id)+"/response", body, &offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

// --- Companies ---

func (c *HTTPClient) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return getList[model.Company](ctx, c, "/officer/companies")
}

func (c *HTTPClient) ListAssignedCompanies(ctx context.Context) ([]model.Company, error) {
	return getList[model.Company](ctx, c, "/officer/companies/assigned")
}

func (c *HTTPClient) AssignCompany(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/officer/companies/"+url.PathEscape(id)+"/assign", nil, nil)
}

func (c *HTTPClient) UnassignCompany(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/officer/companies/"+url.PathEscape(id)+"/assign", nil, nil)
}

// --- Students ---

func (c *HTTPClient) ListStudents(ctx context.Context) ([]model.Student, error) {
	return getList[model.Student](ctx, c, "/officer/students")
}

func (c *HTTPClient) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	if err := c.doJSON(ctx, http.MethodGet, "/officer/students/"+url.PathEscape(id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// getList fetches a collection and normalizes either response shape.
func getList[T any](ctx context.Context, c *HTTPClient, path string) ([]T, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[T](body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return items, nil
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	respBody, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// do sends the request and returns the body of a 2xx response. Non-2xx
// responses become *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID, err := idgen.RequestID()
	if err == nil {
		req.Header.Set("X-Request-ID", requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	// 204 No Content: success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}
