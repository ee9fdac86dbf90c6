package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/moneyflow/internal/client/routes"
)

type fakeExec struct {
	loggedIn bool

	// visits lists every route passed to visit; deny holds the routes
	// that should be refused.
	visits []string
	deny   map[string]bool

	calls []string
}

func (f *fakeExec) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) visit(_ context.Context, route string) bool {
	f.visits = append(f.visits, route)
	return !f.deny[route]
}

func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error           { return f.record("whoami") }
func (f *fakeExec) List(context.Context) error             { return f.record("list") }
func (f *fakeExec) Show(_ context.Context, id int64) error { return f.record("show %d", id) }
func (f *fakeExec) Add(context.Context) error              { return f.record("add") }
func (f *fakeExec) Edit(_ context.Context, id int64) error { return f.record("edit %d", id) }
func (f *fakeExec) Delete(_ context.Context, id int64) error {
	return f.record("delete %d", id)
}
func (f *fakeExec) Filter(context.Context) error       { return f.record("filter") }
func (f *fakeExec) ClearFilters(context.Context) error { return f.record("clearfilters") }
func (f *fakeExec) Meta(context.Context) error         { return f.record("meta") }
func (f *fakeExec) Categories(_ context.Context, id int64) error {
	return f.record("categories %d", id)
}
func (f *fakeExec) Subcategories(_ context.Context, id int64) error {
	return f.record("subcategories %d", id)
}

// silence swaps printlnFn for one that records lines.
func silence(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func run(exec execIface, input ...string) {
	sc := bufio.NewScanner(strings.NewReader(strings.Join(input, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, sc)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silence(t)

	exec := &fakeExec{loggedIn: true}
	run(exec,
		"list",
		"l",
		"show 12",
		"add",
		"edit 3",
		"delete 4",
		"filter",
		"clearfilters",
		"meta",
		"categories",
		"categories 2",
		"subcategories 7",
		"whoami",
		"logout",
		"exit",
		"list",
	)

	want := []string{
		"list", "list", "show 12", "add", "edit 3", "delete 4", "filter", "clearfilters",
		"meta", "categories 0", "categories 2", "subcategories 7", "whoami", "logout",
	}
	assert.Equal(t, want, exec.calls)
	assert.Equal(t, []string{
		routes.Dashboard, routes.Dashboard, "/transactions/12", "/transactions/new",
		"/transactions/3/edit", "/transactions/4", routes.Dashboard, routes.Dashboard,
		"/metadata", "/metadata", "/metadata", "/metadata", "/profile", "/logout",
	}, exec.visits)
}

func TestRunREPL_DeniedRouteSkipsHandler(t *testing.T) {
	silence(t)

	exec := &fakeExec{deny: map[string]bool{routes.Dashboard: true}}
	run(exec, "list", "login", "quit")

	assert.Equal(t, []string{"login"}, exec.calls)
	assert.Equal(t, []string{routes.Dashboard, routes.Login}, exec.visits)
}

func TestRunREPL_UsageErrors(t *testing.T) {
	lines := silence(t)

	exec := &fakeExec{loggedIn: true}
	run(exec, "show", "edit abc", "delete -1", "categories x", "foobar", "")

	assert.Empty(t, exec.calls)
	assert.Empty(t, exec.visits)
	assert.Contains(t, *lines, "Usage: show <id>")
	assert.Contains(t, *lines, "Usage: edit <id>")
	assert.Contains(t, *lines, "Usage: delete <id>")
	assert.Contains(t, *lines, "Usage: categories [id]")
	assert.Contains(t, *lines, "Unknown command:foobar")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := silence(t)

	exec := &fakeExec{}
	run(exec, "help", "login", "help", "exit")

	assert.Contains(t, *lines, helpAnonymous)
	assert.Contains(t, *lines, helpUser)
	assert.Contains(t, *lines, "mf status> ")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestCommandRoute(t *testing.T) {
	tests := []struct {
		cmd  string
		args []string
		want string
	}{
		{cmd: "login", want: routes.Login},
		{cmd: "register", want: routes.Register},
		{cmd: "filter", want: routes.Dashboard},
		{cmd: "show", args: []string{"5"}, want: "/transactions/5"},
		{cmd: "edit", args: []string{"5"}, want: "/transactions/5/edit"},
		{cmd: "subcategories", want: "/metadata"},
		{cmd: "nope", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			assert.Equal(t, tt.want, commandRoute(tt.cmd, tt.args))
		})
	}
}
