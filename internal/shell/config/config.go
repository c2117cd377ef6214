package config

import (
	"fmt"
	"log"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/sqlet/sqlet/internal/version"
)

// Config represents the configuration for the sqlet shell.
type Config struct {
	Path        string        `arg:"positional" help:"Path to the SQLite database file (defaults to an in-memory database)" default:":memory:"`
	ReadOnly    bool          `arg:"--read-only" help:"Open the database without write access"`
	BusyTimeout time.Duration `arg:"--busy-timeout" help:"How long a statement blocked by another connection keeps retrying before failing" default:"5s"`
	BusyRetries int           `arg:"--busy-retries" help:"Retry a blocked statement this many times instead of using --busy-timeout (0 keeps the timeout)" default:"0"`
	Verbose     bool          `arg:"-v,--verbose" help:"Log lock retries and other diagnostics to stderr"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.ShellVersion())
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if cfg.BusyRetries < 0 {
		log.Fatal("--busy-retries must not be negative")
	}

	return cfg
}
