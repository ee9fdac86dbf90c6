package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/dmitrijs2005/moneyflow/internal/client/config"
	"github.com/dmitrijs2005/moneyflow/internal/client/services"
	"github.com/dmitrijs2005/moneyflow/internal/client/web"
)

const shutdownTimeout = 5 * time.Second

type serveCmd struct {
	cfg *config.Config
}

func NewServeCmd(cfg *config.Config) subcommands.Command {
	return &serveCmd{cfg: cfg}
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the local dashboard over HTTP" }
func (*serveCmd) Usage() string {
	return `moneyflow [-a <api>] [-d <db>] [-l <addr>] serve

  Serves a JSON dashboard on the listen address. Every route except
  /health goes through the route guard.
`
}

func (*serveCmd) SetFlags(*flag.FlagSet) {}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rt, err := NewRuntime(ctx, c.cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer rt.Close()

	ln, err := net.Listen("tcp", c.cfg.ListenAddr)
	if err != nil {
		rt.Log.Error(ctx, "listen failed", "addr", c.cfg.ListenAddr, "error", err)
		return subcommands.ExitFailure
	}

	if err := serve(ctx, rt, ln); err != nil {
		rt.Log.Error(ctx, "dashboard stopped", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// serve runs the dashboard on ln until ctx is cancelled, then shuts the
// server down gracefully.
func serve(ctx context.Context, rt *Runtime, ln net.Listener) error {
	rt.Session.SetNavigator(services.NavigatorFunc(func(ctx context.Context, route string) {
		rt.Log.Debug(ctx, "session navigated", "route", route)
	}))

	// restore the stored session before the first request reaches the guard
	if err := rt.Session.Initialize(ctx); err != nil {
		rt.Log.Warn(ctx, "session bootstrap failed", "error", err)
	}

	srv := &http.Server{
		Handler:           web.NewRouter(rt.Session, rt.Store, rt.Guard.Middleware, rt.Log.With("component", "web")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.Log.Info(ctx, "dashboard listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	rt.Log.Info(shutdownCtx, "shutting down dashboard")
	return srv.Shutdown(shutdownCtx)
}
