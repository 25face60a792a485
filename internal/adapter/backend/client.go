package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/bestchance/orderdesk/internal/domain/errors"
	"github.com/bestchance/orderdesk/internal/domain/model"
)

const defaultTimeout = 10 * time.Second

// ErrInvalidProjectID rejects identifiers that cannot be used as a path segment.
var ErrInvalidProjectID = errors.New("invalid project id")

// TooManyRequestsError represents rate limiting signal from the backend.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// StatusError is an unexpected backend response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return "backend error: " + e.Status
}

// Client exposes the REST backend operations used by the console.
type Client interface {
	Token(ctx context.Context, username, password string) (string, error)
	Materials(ctx context.Context, session model.Session) ([]model.MaterialItem, error)
	Fleets(ctx context.Context, session model.Session) ([]model.FleetItem, error)
	Projects(ctx context.Context, session model.Session) ([]model.Project, error)
	ProjectExpenses(ctx context.Context, session model.Session, projectID string) ([]model.ExpenseGroup, error)
	SubmitOrder(ctx context.Context, session model.Session, req model.OrderRequest) (*model.OrderReceipt, error)
	AddOperationalFee(ctx context.Context, session model.Session, projectID string, fee model.OperationalFee) error
	UpdateExpensePrice(ctx context.Context, session model.Session, update model.ExpensePriceUpdate) error
	MonthlyReports(ctx context.Context, session model.Session) ([]model.MonthlyReport, error)
}

// Observer receives per-request telemetry.
type Observer interface {
	ObserveBackendRequest(endpoint string, code int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveBackendRequest(string, int, time.Duration) {}

// Credentials are the OAuth client fields sent with password grants.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// HTTPClient implements Client via the REST API.
type HTTPClient struct {
	baseURL     *url.URL
	httpClient  *http.Client
	credentials Credentials
	observer    Observer
	logger      *slog.Logger
}

// NewHTTPClient creates a backend client. A non-positive timeout uses 10s.
func NewHTTPClient(baseURL string, timeout time.Duration, creds Credentials, observer Observer, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("backend url must be absolute")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &HTTPClient{
		baseURL:     parsed,
		credentials: creds,
		observer:    observer,
		logger:      logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Token exchanges user credentials for a bearer token.
func (c *HTTPClient) Token(ctx context.Context, username, password string) (string, error) {
	req := tokenRequest{
		GrantType:    "password",
		Username:     username,
		Password:     password,
		ClientID:     c.credentials.ClientID,
		ClientSecret: c.credentials.ClientSecret,
	}
	var resp tokenResponse
	if _, err := c.do(ctx, nil, http.MethodPost, "token", req, &resp); err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) {
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", err
	}
	if resp.AccessToken == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	return resp.AccessToken, nil
}

// Materials lists the material catalog.
func (c *HTTPClient) Materials(ctx context.Context, session model.Session) ([]model.MaterialItem, error) {
	var resp materialsResponse
	if _, err := c.do(ctx, &session, http.MethodGet, "read-material", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]model.MaterialItem, 0, len(resp.AllMaterial))
	for _, m := range resp.AllMaterial {
		out = append(out, m.toModel())
	}
	return out, nil
}

// Fleets lists the fleet catalog.
func (c *HTTPClient) Fleets(ctx context.Context, session model.Session) ([]model.FleetItem, error) {
	var resp fleetsResponse
	if _, err := c.do(ctx, &session, http.MethodGet, "read-fleets", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]model.FleetItem, 0, len(resp.AllFleet))
	for _, f := range resp.AllFleet {
		out = append(out, f.toModel())
	}
	return out, nil
}

// Projects lists projects ordered by project number.
func (c *HTTPClient) Projects(ctx context.Context, session model.Session) ([]model.Project, error) {
	var resp projectsResponse
	if _, err := c.do(ctx, &session, http.MethodGet, "read-all-projects", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]model.Project, 0, len(resp.AllProjects))
	for _, p := range resp.AllProjects {
		out = append(out, p.toModel())
	}
	slices.SortStableFunc(out, func(a, b model.Project) int {
		return compareProjectNo(a.ProjectNo, b.ProjectNo)
	})
	return out, nil
}

// ProjectExpenses returns the grouped expense report of a project.
func (c *HTTPClient) ProjectExpenses(ctx context.Context, session model.Session, projectID string) ([]model.ExpenseGroup, error) {
	if err := checkProjectID(projectID); err != nil {
		return nil, err
	}
	var resp expensesResponse
	if _, err := c.do(ctx, &session, http.MethodGet, "read-project-expenses", nil, &resp, projectID); err != nil {
		return nil, err
	}
	out := make([]model.ExpenseGroup, 0, len(resp.GroupedExpenses))
	for _, g := range resp.GroupedExpenses {
		out = append(out, g.toModel())
	}
	return out, nil
}

// SubmitOrder posts req to the endpoint of its flow.
func (c *HTTPClient) SubmitOrder(ctx context.Context, session model.Session, req model.OrderRequest) (*model.OrderReceipt, error) {
	if err := checkProjectID(req.ProjectID); err != nil {
		return nil, err
	}
	var endpoint string
	switch req.Flow {
	case model.FlowCombined:
		endpoint = "order-fleet"
	case model.FlowMaterial:
		endpoint = "order-material"
	default:
		return nil, domainErrors.ErrInvalidFlow
	}
	body, err := c.do(ctx, &session, http.MethodPost, endpoint, req.Body(), nil, req.ProjectID)
	if err != nil {
		return nil, err
	}
	return &model.OrderReceipt{ID: orderID(body), Response: string(body)}, nil
}

// AddOperationalFee records a manual operation expense.
func (c *HTTPClient) AddOperationalFee(ctx context.Context, session model.Session, projectID string, fee model.OperationalFee) error {
	if err := checkProjectID(projectID); err != nil {
		return err
	}
	_, err := c.do(ctx, &session, http.MethodPost, "order-operation", fee, nil, projectID)
	return err
}

// UpdateExpensePrice rewrites the name and unit price of an expense line.
func (c *HTTPClient) UpdateExpensePrice(ctx context.Context, session model.Session, update model.ExpensePriceUpdate) error {
	if strings.TrimSpace(update.ExpenseID) == "" {
		return fmt.Errorf("expense id: %w", domainErrors.ErrNotFound)
	}
	_, err := c.do(ctx, &session, http.MethodPost, "update-expense-price", newExpensePriceRequest(update), nil)
	return err
}

// MonthlyReports lists the generated monthly cost reports.
func (c *HTTPClient) MonthlyReports(ctx context.Context, session model.Session) ([]model.MonthlyReport, error) {
	var resp monthlyReportsResponse
	if _, err := c.do(ctx, &session, http.MethodGet, "read-monthly-expenses", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]model.MonthlyReport, 0, len(resp.MonthlyReports))
	for _, r := range resp.MonthlyReports {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (c *HTTPClient) do(ctx context.Context, session *model.Session, method, endpointName string, in, out any, segments ...string) ([]byte, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(append([]string{endpoint.Path, "/", endpointName}, segments...)...)

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", endpointName, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != nil && session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observer.ObserveBackendRequest(endpointName, 0, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()
	c.observer.ObserveBackendRequest(endpointName, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out != nil {
			if err := json.Unmarshal(body, out); err != nil {
				return nil, fmt.Errorf("decode %s response: %w", endpointName, err)
			}
		}
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domainErrors.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", endpointName, domainErrors.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		c.logger.Error("backend request failed",
			slog.String("endpoint", endpointName),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
}

func checkProjectID(projectID string) error {
	if strings.TrimSpace(projectID) == "" || strings.ContainsAny(projectID, "/?#") || projectID == "." || projectID == ".." {
		return ErrInvalidProjectID
	}
	return nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
