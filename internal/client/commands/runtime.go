// Package commands holds the moneyflow subcommands and the runtime they
// share: configuration, logger, local database, API client, session, store
// and route guard.
package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/moneyflow/internal/client/client"
	"github.com/dmitrijs2005/moneyflow/internal/client/config"
	"github.com/dmitrijs2005/moneyflow/internal/client/guard"
	"github.com/dmitrijs2005/moneyflow/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/moneyflow/internal/client/services"
	"github.com/dmitrijs2005/moneyflow/internal/filex"
	"github.com/dmitrijs2005/moneyflow/internal/logging"
)

type Runtime struct {
	Config  *config.Config
	Log     logging.Logger
	DB      *sql.DB
	API     *client.HTTPClient
	Session *services.Session
	Store   *services.TransactionStore
	Guard   *guard.Guard
}

// NewRuntime opens the local database and builds the services on top of
// it. Logs go to logOut; the session starts with no navigator.
func NewRuntime(ctx context.Context, cfg *config.Config, logOut io.Writer) (*Runtime, error) {
	if logOut == nil {
		logOut = os.Stderr
	}
	log := logging.NewTextLogger(logOut, logging.ParseLevel(cfg.LogLevel))

	path, err := filex.EnsureParentDir(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error preparing database directory: %w", err)
	}

	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api := client.NewHTTPClient(cfg.APIBaseURL, client.WithLogger(log.With("component", "api")))
	session := services.NewSession(api, metadata.NewSQLiteRepository(db), nil, log.With("component", "session"))
	store := services.NewTransactionStore(api, session, log.With("component", "transactions"))

	return &Runtime{
		Config:  cfg,
		Log:     log,
		DB:      db,
		API:     api,
		Session: session,
		Store:   store,
		Guard:   guard.New(session, log.With("component", "guard")),
	}, nil
}

func (r *Runtime) Close() error {
	return r.DB.Close()
}
