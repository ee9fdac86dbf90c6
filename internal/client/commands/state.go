package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/google/subcommands"

	"github.com/dmitrijs2005/moneyflow/internal/client/config"
	"github.com/dmitrijs2005/moneyflow/internal/client/repositories/metadata"
)

type stateCmd struct {
	cfg   *config.Config
	clear bool
}

func NewStateCmd(cfg *config.Config) subcommands.Command {
	return &stateCmd{cfg: cfg}
}

func (*stateCmd) Name() string     { return "state" }
func (*stateCmd) Synopsis() string { return "show or wipe the locally stored session state" }
func (*stateCmd) Usage() string {
	return `moneyflow [-d <db>] state [-clear]

  Lists the keys kept in the local database with their value sizes.
  Values are never printed. With -clear every key is removed, which
  forgets the stored session.
`
}

func (c *stateCmd) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.clear, "clear", false, "remove every stored key")
}

func (c *stateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rt, err := NewRuntime(ctx, c.cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer rt.Close()

	if err := runState(ctx, metadata.NewSQLiteRepository(rt.DB), c.clear, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type stateRepository interface {
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

func runState(ctx context.Context, repo stateRepository, clear bool, out io.Writer) error {
	if clear {
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Local state cleared.")
		return nil
	}

	values, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		fmt.Fprintln(out, "No local state.")
		return nil
	}
	for _, key := range slices.Sorted(maps.Keys(values)) {
		fmt.Fprintf(out, "%s\t%d bytes\n", key, len(values[key]))
	}
	return nil
}
