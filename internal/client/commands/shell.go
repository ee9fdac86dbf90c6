package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/dmitrijs2005/moneyflow/internal/client/cli"
	"github.com/dmitrijs2005/moneyflow/internal/client/config"
)

type shellCmd struct {
	cfg *config.Config
}

func NewShellCmd(cfg *config.Config) subcommands.Command {
	return &shellCmd{cfg: cfg}
}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "start the interactive Money Flow shell" }
func (*shellCmd) Usage() string {
	return `moneyflow [-a <api>] [-d <db>] [-i <seconds>] shell

  Opens a REPL over the Money Flow API. The session is restored from the
  local database when both tokens are stored there.
`
}

func (*shellCmd) SetFlags(*flag.FlagSet) {}

func (c *shellCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rt, err := NewRuntime(ctx, c.cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer rt.Close()

	app := cli.NewApp(rt.Session, rt.Store, rt.Guard, rt.API)
	rt.Session.SetNavigator(app)

	app.Run(ctx, c.cfg.OnlineCheckInterval)
	return subcommands.ExitSuccess
}
