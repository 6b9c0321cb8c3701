package config

import (
	"flag"
	"os"
	"time"

	"github.com/akarpov/blogbox/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend server
//	-s string   path of the local state database
//	-q int      author filter quiet period in milliseconds
//
// os.Args is filtered to only the flags handled here, so flags owned by
// other components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.StateDBPath, "s", cfg.StateDBPath, "path of the local state database")
	quietMs := fs.Int("q", int(cfg.AuthorQuietPeriod.Milliseconds()), "author quiet period (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AuthorQuietPeriod = time.Duration(*quietMs) * time.Millisecond
}
