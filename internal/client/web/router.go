// Package web serves the local dashboard: a JSON surface over the session
// and the transactions store, with the route guard in front of every page.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/moneyflow/internal/client/models"
	"github.com/dmitrijs2005/moneyflow/internal/client/routes"
	"github.com/dmitrijs2005/moneyflow/internal/logging"
)

type sessionService interface {
	Login(ctx context.Context, email, password string) models.AuthResult
	Register(ctx context.Context, req models.RegisterRequest) models.AuthResult
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	User() *models.User
	AccessTokenExpiry() (time.Time, bool)
}

type transactionService interface {
	FetchListWith(ctx context.Context, f models.Filters) ([]models.Transaction, error)
	FetchOne(ctx context.Context, id int64) (*models.TransactionDetail, error)
	FetchMetadata(ctx context.Context) error
	Metadata() models.Metadata
	FilteredCategories(typeID int64) []models.Category
	FilteredSubcategories(categoryID int64) []models.Subcategory
	Create(ctx context.Context, in models.TransactionInput) (*models.TransactionDetail, error)
	Update(ctx context.Context, id int64, patch models.TransactionPatch) (*models.TransactionDetail, error)
	Delete(ctx context.Context, id int64) error
}

type Handlers struct {
	session sessionService
	store   transactionService
	log     logging.Logger
}

// NewRouter mounts every dashboard route. guard wraps all of them except
// /health.
func NewRouter(session sessionService, store transactionService, guard func(http.Handler) http.Handler, log logging.Logger) *chi.Mux {
	if log == nil {
		log = logging.Discard()
	}
	h := &Handlers{session: session, store: store, log: log}

	r := chi.NewRouter()
	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		if guard != nil {
			r.Use(guard)
		}

		r.Post(routes.Login, h.Login)
		r.Post(routes.Register, h.Register)
		r.Post("/logout", h.Logout)
		r.Get("/profile", h.Profile)

		r.Get(routes.Dashboard, h.Dashboard)
		r.Get("/metadata", h.Metadata)
		r.Get("/categories", h.Categories)
		r.Get("/subcategories", h.Subcategories)

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", h.CreateTransaction)
			r.Get("/{id}", h.GetTransaction)
			r.Patch("/{id}", h.UpdateTransaction)
			r.Delete("/{id}", h.DeleteTransaction)
		})
	})

	return r
}
