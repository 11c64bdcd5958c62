// Package backend talks to the banking REST API that owns clients, payments and
// authentication. Every response is wrapped in models.Envelope.
package backend

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"backoffice/internal/backend/models"
	"backoffice/internal/verification"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/sentinel"
)

var tracer = otel.Tracer("backoffice/backend")

// Client is a thin wrapper over the backend endpoints. It never retries.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New builds a Client for baseURL, e.g. "https://api.example.com/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url must be absolute: %q", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the parsed backend root, used by the workspace proxy.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/Auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/Auth/logout", token, struct{}{}, nil)
}

// GetClient fetches the client record visible to a client-user.
func (c *Client) GetClient(ctx context.Context, token string, clientID int64) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/Client/%d", clientID), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListBankClients(ctx context.Context, token string) ([]models.Client, error) {
	var out []models.Client
	if err := c.do(ctx, http.MethodGet, "/bankuser/clients", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBankClient(ctx context.Context, token string, clientID int64) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bankuser/clients/%d", clientID), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListClientsByStatus(ctx context.Context, token string, status verification.Status) ([]models.Client, error) {
	var out []models.Client
	path := "/bankuser/clients/verification-status/" + url.PathEscape(status.String())
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) VerifyClient(ctx context.Context, token string, clientID int64, req models.VerifyRequest) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bankuser/clients/%d/verify", clientID), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListClientDocuments(ctx context.Context, token string, clientID int64) ([]models.Document, error) {
	var out []models.Document
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bankuser/clients/%d/documents", clientID), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPendingPayments(ctx context.Context, token string) ([]models.Payment, error) {
	var out []models.Payment
	if err := c.do(ctx, http.MethodGet, "/bankuser/payments/pending", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPayment(ctx context.Context, token string, paymentID int64) (*models.Payment, error) {
	var out models.Payment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bankuser/payments/%d", paymentID), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ApprovePayment(ctx context.Context, token string, paymentID int64, req models.PaymentDecisionRequest) (*models.Payment, error) {
	var out models.Payment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bankuser/payments/%d/approve", paymentID), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RejectPayment(ctx context.Context, token string, paymentID int64, req models.PaymentDecisionRequest) (*models.Payment, error) {
	var out models.Payment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bankuser/payments/%d/reject", paymentID), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one request and unwraps the envelope into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {
	ctx, span := tracer.Start(ctx, "backend "+method)
	defer span.End()
	span.SetAttributes(attribute.String("http.method", method), attribute.String("backend.path", path))

	err := c.roundTrip(ctx, method, path, token, body, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode backend request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to build backend request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "backend request failed",
			"method", method,
			"path", path,
			"error", err,
		)
		return dErrors.Wrap(fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err), dErrors.CodeUnavailable, "backend unavailable")
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		c.logger.WarnContext(ctx, "backend rejected request",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return err
	}

	var env models.Envelope[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "malformed backend response")
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "backend reported failure"
		}
		return dErrors.New(dErrors.CodeUnavailable, msg)
	}
	if out == nil {
		return nil
	}
	if env.Data == nil || len(*env.Data) == 0 || string(*env.Data) == "null" {
		return dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "backend returned no data")
	}
	if err := json.Unmarshal(*env.Data, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "malformed backend data")
	}
	return nil
}

func statusError(status int) error {
	switch {
	case status < 400:
		return nil
	case status == http.StatusNotFound:
		return dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "resource not found")
	case status == http.StatusUnauthorized:
		return dErrors.New(dErrors.CodeUnauthorized, "backend rejected credentials")
	case status == http.StatusForbidden:
		return dErrors.New(dErrors.CodeForbidden, "backend denied access")
	case status == http.StatusBadRequest:
		return dErrors.New(dErrors.CodeBadRequest, "backend rejected request")
	default:
		return dErrors.Wrap(sentinel.ErrUnavailable, dErrors.CodeUnavailable, fmt.Sprintf("backend returned status %d", status))
	}
}
