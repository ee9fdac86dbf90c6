// Package guard decides, for every navigation, whether the target route is
// allowed for the current session or where to send the user instead.
package guard

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/moneyflow/internal/client/routes"
	"github.com/dmitrijs2005/moneyflow/internal/logging"
)

// Session is the part of services.Session the guard needs.
type Session interface {
	Initialize(ctx context.Context) error
	IsAuthenticated() bool
}

type Guard struct {
	session Session
	log     logging.Logger
}

func New(session Session, log logging.Logger) *Guard {
	if log == nil {
		log = logging.Discard()
	}
	return &Guard{session: session, log: log}
}

// Resolve bootstraps the session (a no-op after the first time) and returns
// the route to show instead of path, if any.
func (g *Guard) Resolve(ctx context.Context, path string) (string, bool) {
	if err := g.session.Initialize(ctx); err != nil {
		g.log.Warn(ctx, "session bootstrap failed", "error", err)
	}

	authenticated := g.session.IsAuthenticated()
	switch {
	case !authenticated && !routes.IsAuth(path):
		return routes.Login, true
	case authenticated && routes.IsAuth(path):
		return routes.Dashboard, true
	}
	return "", false
}

// Middleware applies Resolve to every request and answers redirects with
// 302 Found.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if target, redirect := g.Resolve(r.Context(), r.URL.Path); redirect {
			g.log.Debug(r.Context(), "guard redirect", "from", r.URL.Path, "to", target)
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
