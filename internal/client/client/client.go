package client

import (
	"context"

	"github.com/dmitrijs2005/moneyflow/internal/client/models"
)

// Client is the transport contract for the Money Flow REST API. Methods
// that take an accessToken send it as a bearer credential.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.MessageResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	Me(ctx context.Context, accessToken string) (*models.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)

	ListTransactions(ctx context.Context, accessToken string, filters models.Filters) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, accessToken string, id int64) (*models.TransactionDetail, error)
	CreateTransaction(ctx context.Context, accessToken string, in models.TransactionInput) (*models.TransactionDetail, error)
	UpdateTransaction(ctx context.Context, accessToken string, id int64, patch models.TransactionPatch) (*models.TransactionDetail, error)
	DeleteTransaction(ctx context.Context, accessToken string, id int64) error

	TransactionTypes(ctx context.Context) ([]models.TransactionType, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Subcategories(ctx context.Context) ([]models.Subcategory, error)
	Statuses(ctx context.Context) ([]models.Status, error)

	Ping(ctx context.Context) error
}
