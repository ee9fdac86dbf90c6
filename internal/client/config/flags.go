package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/moneyflow/internal/flagx"
)

// Flags consumed by the config loader. Everything else on the command line
// belongs to the subcommand dispatcher.
var Flags = []string{"-a", "-i", "-d", "-l", "-c", "-config"}

// parseFlags populates cfg from -a, -i, -d and -l. It panics on malformed
// values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "Money Flow API base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local SQLite database")
	fs.StringVar(&cfg.ListenAddr, "l", cfg.ListenAddr, "listen address of the local dashboard")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -i only counts whole seconds; an interval from an earlier layer
	// survives unless the flag was given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
}
