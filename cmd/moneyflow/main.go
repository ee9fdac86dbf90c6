package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"github.com/dmitrijs2005/moneyflow/internal/client/commands"
	"github.com/dmitrijs2005/moneyflow/internal/client/config"
	"github.com/dmitrijs2005/moneyflow/internal/flagx"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initSignalHandler(cancel)

	// config flags were consumed by LoadConfig; the rest is for subcommands
	fs := flag.NewFlagSet("moneyflow", flag.ExitOnError)
	commander := subcommands.NewCommander(fs, "moneyflow")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	commander.Register(commands.NewShellCmd(cfg), "")
	commander.Register(commands.NewServeCmd(cfg), "")
	commander.Register(commands.NewStateCmd(cfg), "")

	_ = fs.Parse(flagx.ExcludeArgs(os.Args[1:], config.Flags))
	os.Exit(int(commander.Execute(ctx)))
}

func initSignalHandler(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}
