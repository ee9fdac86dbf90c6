package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moneyflow/internal/client/models"
	"github.com/dmitrijs2005/moneyflow/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeaderName carries the per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// do performs one request. body is JSON-encoded when non-nil and out is
// decoded from a 2xx response when non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return &APIError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: KindUnknown, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// mapError classifies a non-2xx response and captures its JSON body.
// Bodies that are not JSON are dropped.
func (c *HTTPClient) mapError(resp *http.Response) error {
	e := &APIError{Kind: kindForStatus(resp.StatusCode), StatusCode: resp.StatusCode}

	data, err := io.ReadAll(resp.Body)
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return e
	}
	var payload models.ErrorPayload
	if json.Unmarshal(data, &payload) == nil {
		e.Payload = &payload
	}
	return e
}

func transactionPath(id int64) string {
	return "/v1/transactions/" + strconv.FormatInt(id, 10) + "/"
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	req := map[string]string{"email": email, "password": password}
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/v1/users/login/", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/v1/users/register/", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context, accessToken, refreshToken string) error {
	req := map[string]string{"refresh": refreshToken}
	return c.do(ctx, http.MethodPost, "/v1/users/logout/", accessToken, req, nil)
}

func (c *HTTPClient) Me(ctx context.Context, accessToken string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/v1/users/me/", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (string, error) {
	req := map[string]string{"refresh": refreshToken}
	var resp struct {
		Access string `json:"access"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/users/refresh/", "", req, &resp); err != nil {
		return "", err
	}
	return resp.Access, nil
}

func (c *HTTPClient) ListTransactions(ctx context.Context, accessToken string, filters models.Filters) ([]models.Transaction, error) {
	path := "/v1/transactions/"
	if q := filters.Query(); q != "" {
		path += "?" + q
	}
	var list []models.Transaction
	if err := c.do(ctx, http.MethodGet, path, accessToken, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) GetTransaction(ctx context.Context, accessToken string, id int64) (*models.TransactionDetail, error) {
	var t models.TransactionDetail
	if err := c.do(ctx, http.MethodGet, transactionPath(id), accessToken, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) CreateTransaction(ctx context.Context, accessToken string, in models.TransactionInput) (*models.TransactionDetail, error) {
	var t models.TransactionDetail
	if err := c.do(ctx, http.MethodPost, "/v1/transactions/", accessToken, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) UpdateTransaction(ctx context.Context, accessToken string, id int64, patch models.TransactionPatch) (*models.TransactionDetail, error) {
	var t models.TransactionDetail
	if err := c.do(ctx, http.MethodPatch, transactionPath(id), accessToken, patch.Body(), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) DeleteTransaction(ctx context.Context, accessToken string, id int64) error {
	return c.do(ctx, http.MethodDelete, transactionPath(id), accessToken, nil, nil)
}

func (c *HTTPClient) TransactionTypes(ctx context.Context) ([]models.TransactionType, error) {
	var out []models.TransactionType
	if err := c.do(ctx, http.MethodGet, "/v1/transaction-types/", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, "/v1/categories/", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Subcategories(ctx context.Context) ([]models.Subcategory, error) {
	var out []models.Subcategory
	if err := c.do(ctx, http.MethodGet, "/v1/subcategories/", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Statuses(ctx context.Context) ([]models.Status, error) {
	var out []models.Status
	if err := c.do(ctx, http.MethodGet, "/v1/statuses/", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping calls the unauthenticated statuses endpoint. Any non-network
// response counts as reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "/v1/statuses/", "", nil, nil)
	if err != nil && KindOf(err) == KindNetwork {
		return ErrUnavailable
	}
	return nil
}
