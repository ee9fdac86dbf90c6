package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moneyflow/internal/client/routes"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. *App implements it.
type execIface interface {
	isLoggedIn() bool
	// visit asks the guard whether route may be shown. On a redirect the
	// target page runs instead and visit returns false.
	visit(ctx context.Context, route string) bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	List(ctx context.Context) error
	Show(ctx context.Context, id int64) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Filter(ctx context.Context) error
	ClearFilters(ctx context.Context) error

	Meta(ctx context.Context) error
	Categories(ctx context.Context, typeID int64) error
	Subcategories(ctx context.Context, categoryID int64) error
}

const (
	helpAnonymous = "Available commands: register, login, exit"
	helpUser      = "Available commands: (l)ist, show <id>, add, edit <id>, delete <id>, filter, clearfilters, " +
		"meta, categories [typeID], subcategories [categoryID], whoami, logout, exit"
)

// commandRoute maps a command and its arguments to the route it opens.
func commandRoute(cmd string, args []string) string {
	switch cmd {
	case "login":
		return routes.Login
	case "register":
		return routes.Register
	case "l", "list", "filter", "clearfilters":
		return routes.Dashboard
	case "add":
		return "/transactions/new"
	case "show", "delete":
		return "/transactions/" + strings.Join(args, "")
	case "edit":
		return "/transactions/" + strings.Join(args, "") + "/edit"
	case "meta", "categories", "subcategories":
		return "/metadata"
	case "whoami":
		return "/profile"
	case "logout":
		return "/logout"
	}
	return ""
}

// runREPL reads commands from scanner until EOF, exit or quit.
//
// Every routed command is first checked with visit, so an anonymous user
// typing "list" lands on the login page and a logged-in user typing
// "login" lands on the dashboard. Handler errors are reported by the
// handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mf %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpAnonymous)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		route := commandRoute(cmd, args)
		if route == "" {
			printlnFn("Unknown command:", cmd)
			continue
		}

		var id int64
		switch cmd {
		case "show", "edit", "delete":
			var ok bool
			if id, ok = parseID(args); !ok {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
		case "categories", "subcategories":
			if len(args) > 0 {
				var ok bool
				if id, ok = parseID(args); !ok {
					printlnFn(fmt.Sprintf("Usage: %s [id]", cmd))
					continue
				}
			}
		}

		if !a.visit(ctx, route) {
			continue
		}

		switch cmd {
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "l", "list":
			_ = a.List(ctx)
		case "show":
			_ = a.Show(ctx, id)
		case "add":
			_ = a.Add(ctx)
		case "edit":
			_ = a.Edit(ctx, id)
		case "delete":
			_ = a.Delete(ctx, id)
		case "filter":
			_ = a.Filter(ctx)
		case "clearfilters":
			_ = a.ClearFilters(ctx)
		case "meta":
			_ = a.Meta(ctx)
		case "categories":
			_ = a.Categories(ctx, id)
		case "subcategories":
			_ = a.Subcategories(ctx, id)
		}
	}
}

// visit consults the guard. A redirect opens the login page or the
// dashboard instead of route.
func (a *App) visit(ctx context.Context, route string) bool {
	target, redirect := a.guard.Resolve(ctx, route)
	if !redirect {
		a.Navigate(ctx, route)
		return true
	}

	a.Navigate(ctx, target)
	switch target {
	case routes.Login:
		fmt.Fprintln(a.out, "Please log in first.")
		_ = a.Login(ctx)
	case routes.Dashboard:
		fmt.Fprintln(a.out, "Already logged in.")
		_ = a.List(ctx)
	}
	return false
}

func (a *App) getStatus() string {
	s := a.currentRoute()
	if u := a.session.User(); u != nil {
		s += " " + u.Email
	}
	if m := a.mode(); m != "" {
		s += " " + string(m)
	}
	return fmt.Sprintf("(%s)", s)
}
