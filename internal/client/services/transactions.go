package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/moneyflow/internal/client/client"
	"github.com/dmitrijs2005/moneyflow/internal/client/models"
	"github.com/dmitrijs2005/moneyflow/internal/logging"
)

// ErrReload is returned, wrapped around the cause, when a mutation went
// through but the list reload that follows it failed.
var ErrReload = errors.New("reload transactions")

// TransactionStore caches the user's transactions and the reference lists.
// Authenticated calls go through the Authenticator; the store never keeps
// a token of its own.
type TransactionStore struct {
	client client.Client
	auth   Authenticator
	log    logging.Logger

	mu           sync.RWMutex
	transactions []models.Transaction
	meta         models.Metadata
	filters      models.Filters
	loading      bool
}

func NewTransactionStore(c client.Client, auth Authenticator, log logging.Logger) *TransactionStore {
	if log == nil {
		log = logging.Discard()
	}
	return &TransactionStore{client: c, auth: auth, log: log}
}

func (s *TransactionStore) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transactions)
}

func (s *TransactionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *TransactionStore) Filters() models.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters replaces the filter set. It does not fetch.
func (s *TransactionStore) SetFilters(f models.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
}

// ClearFilters empties the filter set. It does not fetch.
func (s *TransactionStore) ClearFilters() {
	s.SetFilters(models.Filters{})
}

func (s *TransactionStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// FetchList loads the transactions matching the current filters and
// replaces the cached list.
func (s *TransactionStore) FetchList(ctx context.Context) ([]models.Transaction, error) {
	return s.fetchList(ctx, s.Filters(), false)
}

// FetchListWith loads the transactions matching f. On success f becomes
// the current filter set in the same step as the list, so concurrent
// callers with different filters each get their own rows.
func (s *TransactionStore) FetchListWith(ctx context.Context, f models.Filters) ([]models.Transaction, error) {
	return s.fetchList(ctx, f, true)
}

func (s *TransactionStore) fetchList(ctx context.Context, filters models.Filters, adopt bool) ([]models.Transaction, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	list, err := WithAuth(ctx, s.auth, func(ctx context.Context, token string) ([]models.Transaction, error) {
		return s.client.ListTransactions(ctx, token, filters)
	})
	if err != nil {
		s.log.Error(ctx, "fetch transactions failed", "query", filters.Query(), "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.transactions = list
	if adopt {
		s.filters = filters
	}
	s.mu.Unlock()

	return slices.Clone(list), nil
}

// FetchOne loads a single transaction. The cached list is not touched.
func (s *TransactionStore) FetchOne(ctx context.Context, id int64) (*models.TransactionDetail, error) {
	tx, err := WithAuth(ctx, s.auth, func(ctx context.Context, token string) (*models.TransactionDetail, error) {
		return s.client.GetTransaction(ctx, token, id)
	})
	if err != nil {
		s.log.Error(ctx, "fetch transaction failed", "id", id, "error", err)
		return nil, err
	}
	return tx, nil
}

// FetchMetadata loads the four reference lists concurrently. Either all of
// them are replaced or, on any failure, none is.
func (s *TransactionStore) FetchMetadata(ctx context.Context) error {
	var meta models.Metadata

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		meta.TransactionTypes, err = s.client.TransactionTypes(gctx)
		return err
	})
	g.Go(func() (err error) {
		meta.Categories, err = s.client.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		meta.Subcategories, err = s.client.Subcategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		meta.Statuses, err = s.client.Statuses(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "fetch metadata failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.meta = meta
	s.mu.Unlock()
	return nil
}

// Metadata returns a copy of the reference lists.
func (s *TransactionStore) Metadata() models.Metadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Metadata{
		TransactionTypes: slices.Clone(s.meta.TransactionTypes),
		Categories:       slices.Clone(s.meta.Categories),
		Subcategories:    slices.Clone(s.meta.Subcategories),
		Statuses:         slices.Clone(s.meta.Statuses),
	}
}

// FilteredCategories returns the categories of a transaction type, or all
// of them when typeID is 0.
func (s *TransactionStore) FilteredCategories(typeID int64) []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if typeID == 0 {
		return slices.Clone(s.meta.Categories)
	}
	var out []models.Category
	for _, c := range s.meta.Categories {
		if c.TransactionTypeID == typeID {
			out = append(out, c)
		}
	}
	return out
}

// FilteredSubcategories returns the subcategories of a category, or all of
// them when categoryID is 0.
func (s *TransactionStore) FilteredSubcategories(categoryID int64) []models.Subcategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if categoryID == 0 {
		return slices.Clone(s.meta.Subcategories)
	}
	var out []models.Subcategory
	for _, sc := range s.meta.Subcategories {
		if sc.CategoryID == categoryID {
			out = append(out, sc)
		}
	}
	return out
}

// Create adds a transaction and reloads the list. If only the reload fails
// the created transaction is returned together with the error.
func (s *TransactionStore) Create(ctx context.Context, in models.TransactionInput) (*models.TransactionDetail, error) {
	tx, err := WithAuth(ctx, s.auth, func(ctx context.Context, token string) (*models.TransactionDetail, error) {
		return s.client.CreateTransaction(ctx, token, in)
	})
	if err != nil {
		s.log.Error(ctx, "create transaction failed", "error", err)
		return nil, err
	}
	return tx, s.reload(ctx)
}

// Update patches a transaction and reloads the list.
func (s *TransactionStore) Update(ctx context.Context, id int64, patch models.TransactionPatch) (*models.TransactionDetail, error) {
	tx, err := WithAuth(ctx, s.auth, func(ctx context.Context, token string) (*models.TransactionDetail, error) {
		return s.client.UpdateTransaction(ctx, token, id, patch)
	})
	if err != nil {
		s.log.Error(ctx, "update transaction failed", "id", id, "error", err)
		return nil, err
	}
	return tx, s.reload(ctx)
}

// Delete removes a transaction and reloads the list. A reload failure is
// reported as ErrReload.
func (s *TransactionStore) Delete(ctx context.Context, id int64) error {
	err := s.auth.Do(ctx, func(ctx context.Context, token string) error {
		return s.client.DeleteTransaction(ctx, token, id)
	})
	if err != nil {
		s.log.Error(ctx, "delete transaction failed", "id", id, "error", err)
		return err
	}
	return s.reload(ctx)
}

func (s *TransactionStore) reload(ctx context.Context) error {
	if _, err := s.FetchList(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrReload, err)
	}
	return nil
}
