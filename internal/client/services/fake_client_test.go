package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/moneyflow/internal/client/client"
	"github.com/dmitrijs2005/moneyflow/internal/client/models"
)

// fakeClient implements client.Client. Each method delegates to its func
// field when set and records the call.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	// tokens seen by bearer endpoints, in call order
	tokens []string

	LoginFn    func(email, password string) (*models.LoginResponse, error)
	RegisterFn func(req models.RegisterRequest) (*models.MessageResponse, error)
	LogoutFn   func(access, refresh string) error
	MeFn       func(access string) (*models.User, error)
	RefreshFn  func(refresh string) (string, error)

	ListFn   func(access string, f models.Filters) ([]models.Transaction, error)
	GetFn    func(access string, id int64) (*models.TransactionDetail, error)
	CreateFn func(access string, in models.TransactionInput) (*models.TransactionDetail, error)
	UpdateFn func(access string, id int64, p models.TransactionPatch) (*models.TransactionDetail, error)
	DeleteFn func(access string, id int64) error

	Types      []models.TransactionType
	Cats       []models.Category
	Subcats    []models.Subcategory
	Stats      []models.Status
	SubcatsErr error
	PingErr    error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) record(name, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
	if token != "" {
		f.tokens = append(f.tokens, token)
	}
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) seenTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*models.LoginResponse, error) {
	f.record("Login", "")
	return f.LoginFn(email, password)
}

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) (*models.MessageResponse, error) {
	f.record("Register", "")
	return f.RegisterFn(req)
}

func (f *fakeClient) Logout(_ context.Context, access, refresh string) error {
	f.record("Logout", access)
	if f.LogoutFn == nil {
		return nil
	}
	return f.LogoutFn(access, refresh)
}

func (f *fakeClient) Me(_ context.Context, access string) (*models.User, error) {
	f.record("Me", access)
	if f.MeFn == nil {
		return &models.User{ID: 1, Email: "ann@example.com"}, nil
	}
	return f.MeFn(access)
}

func (f *fakeClient) Refresh(_ context.Context, refresh string) (string, error) {
	f.record("Refresh", "")
	return f.RefreshFn(refresh)
}

func (f *fakeClient) ListTransactions(_ context.Context, access string, flt models.Filters) ([]models.Transaction, error) {
	f.record("ListTransactions", access)
	if f.ListFn == nil {
		return nil, nil
	}
	return f.ListFn(access, flt)
}

func (f *fakeClient) GetTransaction(_ context.Context, access string, id int64) (*models.TransactionDetail, error) {
	f.record("GetTransaction", access)
	return f.GetFn(access, id)
}

func (f *fakeClient) CreateTransaction(_ context.Context, access string, in models.TransactionInput) (*models.TransactionDetail, error) {
	f.record("CreateTransaction", access)
	return f.CreateFn(access, in)
}

func (f *fakeClient) UpdateTransaction(_ context.Context, access string, id int64, p models.TransactionPatch) (*models.TransactionDetail, error) {
	f.record("UpdateTransaction", access)
	return f.UpdateFn(access, id, p)
}

func (f *fakeClient) DeleteTransaction(_ context.Context, access string, id int64) error {
	f.record("DeleteTransaction", access)
	return f.DeleteFn(access, id)
}

func (f *fakeClient) TransactionTypes(context.Context) ([]models.TransactionType, error) {
	f.record("TransactionTypes", "")
	return f.Types, nil
}

func (f *fakeClient) Categories(context.Context) ([]models.Category, error) {
	f.record("Categories", "")
	return f.Cats, nil
}

func (f *fakeClient) Subcategories(context.Context) ([]models.Subcategory, error) {
	f.record("Subcategories", "")
	return f.Subcats, f.SubcatsErr
}

func (f *fakeClient) Statuses(context.Context) ([]models.Status, error) {
	f.record("Statuses", "")
	return f.Stats, nil
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func unauthorized() error {
	return &client.APIError{Kind: client.KindUnauthorized, StatusCode: 401}
}

func validation(body string) error {
	return &client.APIError{
		Kind:       client.KindValidation,
		StatusCode: 400,
		Payload:    mustPayload(body),
	}
}

type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNavigator) Navigate(_ context.Context, route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordingNavigator) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}
