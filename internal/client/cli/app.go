package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/moneyflow/internal/client/models"
	"github.com/dmitrijs2005/moneyflow/internal/client/routes"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// sessionService is the part of services.Session the shell drives.
type sessionService interface {
	Login(ctx context.Context, email, password string) models.AuthResult
	Register(ctx context.Context, req models.RegisterRequest) models.AuthResult
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	User() *models.User
	AccessTokenExpiry() (time.Time, bool)
}

// transactionService is the part of services.TransactionStore the shell drives.
type transactionService interface {
	FetchList(ctx context.Context) ([]models.Transaction, error)
	FetchOne(ctx context.Context, id int64) (*models.TransactionDetail, error)
	FetchMetadata(ctx context.Context) error
	Metadata() models.Metadata
	FilteredCategories(typeID int64) []models.Category
	FilteredSubcategories(categoryID int64) []models.Subcategory
	Create(ctx context.Context, in models.TransactionInput) (*models.TransactionDetail, error)
	Update(ctx context.Context, id int64, patch models.TransactionPatch) (*models.TransactionDetail, error)
	Delete(ctx context.Context, id int64) error
	Filters() models.Filters
	SetFilters(f models.Filters)
	ClearFilters()
}

type routeGuard interface {
	Resolve(ctx context.Context, path string) (string, bool)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	session sessionService
	store   transactionService
	guard   routeGuard
	api     pinger

	reader *bufio.Reader
	out    io.Writer

	mu    sync.RWMutex
	Mode  Mode
	route string
}

func NewApp(session sessionService, store transactionService, guard routeGuard, api pinger) *App {
	return &App{
		session: session,
		store:   store,
		guard:   guard,
		api:     api,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		route:   routes.Dashboard,
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Mode
}

// Navigate records the current route. The session calls it on logout.
func (a *App) Navigate(_ context.Context, route string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.route = route
}

func (a *App) currentRoute() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.route
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// Run starts the connectivity watcher and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Println("Welcome to Money Flow CLI (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, interval)

	// land on the dashboard; the guard sends anonymous users to login
	if a.visit(ctx, routes.Dashboard) {
		_ = a.List(ctx)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

// StartOnlineStatusWatcher pings the API every interval and flips Mode.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
