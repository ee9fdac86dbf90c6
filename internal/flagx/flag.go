// Package flagx splits one command line between several flag consumers:
// the config loader reads its own flags, the subcommand dispatcher gets
// the rest.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigFileFlags are the flags naming a JSON config file.
var ConfigFileFlags = []string{"-c", "-config"}

// flagName returns the flag part of arg and whether arg carries an inline
// "=value".
func flagName(arg string) (string, bool) {
	if !strings.HasPrefix(arg, "-") {
		return "", false
	}
	name, _, inline := strings.Cut(arg, "=")
	return name, inline
}

// takesNext reports whether args[i+1] is the separate value of args[i].
func takesNext(args []string, i int) bool {
	return i+1 < len(args) && !strings.HasPrefix(args[i+1], "-")
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// FilterArgs keeps only the flags listed in allowedFlags together with their
// values. Both "-f value" and "-f=value" forms are recognised. The result is
// never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := toSet(allowedFlags)
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		name, inline := flagName(args[i])
		if _, ok := allowed[name]; !ok {
			continue
		}
		filtered = append(filtered, args[i])
		if !inline && takesNext(args, i) {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ExcludeArgs is the complement of FilterArgs: listed flags and their values
// are dropped, everything else (other flags, subcommand names, positionals)
// is returned in order.
//
// A value-less token after a listed flag is treated as its value, so
// "-a shell" would eat the subcommand; callers put global flags first and
// always pass a value.
func ExcludeArgs(args []string, excludedFlags []string) []string {
	excluded := toSet(excludedFlags)
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		name, inline := flagName(args[i])
		if _, ok := excluded[name]; !ok {
			rest = append(rest, args[i])
			continue
		}
		if !inline && takesNext(args, i) {
			i++
		}
	}

	return rest
}

// JsonConfigFlags returns the path given with -c or -config in os.Args, or
// "" if neither is present. When both are given the last one wins.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], ConfigFileFlags)

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "path to config file")
	fs.StringVar(&config, "c", "", "path to config file (short)")
	_ = fs.Parse(args)

	return config
}
