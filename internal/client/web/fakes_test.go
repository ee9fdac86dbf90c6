package web

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/moneyflow/internal/client/models"
)

type fakeSession struct {
	mu            sync.Mutex
	authenticated bool
	user          *models.User
	expiry        time.Time

	loginRes    models.AuthResult
	registerRes models.AuthResult
	logoutCalls int
	logins      []string
}

func (f *fakeSession) Initialize(context.Context) error { return nil }

func (f *fakeSession) Login(_ context.Context, email, _ string) models.AuthResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, email)
	if f.loginRes.Success {
		f.authenticated = true
	}
	return f.loginRes
}

func (f *fakeSession) Register(context.Context, models.RegisterRequest) models.AuthResult {
	return f.registerRes
}

func (f *fakeSession) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	f.authenticated = false
	return nil
}

func (f *fakeSession) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authenticated
}

func (f *fakeSession) User() *models.User { return f.user }

func (f *fakeSession) AccessTokenExpiry() (time.Time, bool) {
	return f.expiry, !f.expiry.IsZero()
}

type fakeStore struct {
	list      []models.Transaction
	listErr   error
	detail    *models.TransactionDetail
	detailErr error
	meta      models.Metadata
	metaErr   error
	metaCalls int

	created   []models.TransactionInput
	createErr error
	patches   map[int64]models.TransactionPatch
	updateErr error
	deleted   []int64
	deleteErr error
	filters   models.Filters
}

func (f *fakeStore) FetchListWith(_ context.Context, fl models.Filters) ([]models.Transaction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.filters = fl
	return f.list, nil
}

func (f *fakeStore) FetchOne(_ context.Context, id int64) (*models.TransactionDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeStore) FetchMetadata(context.Context) error {
	f.metaCalls++
	return f.metaErr
}

func (f *fakeStore) Metadata() models.Metadata { return f.meta }

func (f *fakeStore) FilteredCategories(typeID int64) []models.Category {
	var out []models.Category
	for _, c := range f.meta.Categories {
		if typeID == 0 || c.TransactionTypeID == typeID {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeStore) FilteredSubcategories(categoryID int64) []models.Subcategory {
	var out []models.Subcategory
	for _, s := range f.meta.Subcategories {
		if categoryID == 0 || s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeStore) Create(_ context.Context, in models.TransactionInput) (*models.TransactionDetail, error) {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.detail, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, p models.TransactionPatch) (*models.TransactionDetail, error) {
	if f.patches == nil {
		f.patches = map[int64]models.TransactionPatch{}
	}
	f.patches[id] = p
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.detail, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}
