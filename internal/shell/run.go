package shell

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sqlet/sqlet"
	"github.com/sqlet/sqlet/internal/log"
	"github.com/sqlet/sqlet/internal/shell/config"
	"github.com/sqlet/sqlet/internal/shell/repl"
	"github.com/sqlet/sqlet/internal/version"
)

// Run runs the sqlet shell.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(version.ShellVersion())

	conn, err := openConnection(conf)
	if err != nil {
		return err
	}
	defer conn.Close()

	rp := repl.NewRepl(ctx, stop, conf, conn)
	defer rp.Shutdown()
	go func() {
		if err := rp.Start(); err != nil {
			fmt.Println(err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Printf("\nGoodbye!\n\n")
	return nil
}

// openConnection opens the database named by the configuration and installs
// the configured lock policy on it.
func openConnection(conf config.Config) (*sqlet.Connection, error) {
	flags := sqlet.NewOpenFlags().SetCreate().SetReadWrite()
	if conf.ReadOnly {
		flags = sqlet.NewOpenFlags().SetReadOnly()
	}

	conn, err := sqlet.OpenWithFlags(conf.Path, flags)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", conf.Path, err)
	}

	if err := installBusyPolicy(conn, conf); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// installBusyPolicy decides how shell statements behave when another
// connection holds a lock. A retry budget takes precedence over the timeout,
// and each retry is logged when the shell runs verbose.
func installBusyPolicy(conn *sqlet.Connection, conf config.Config) error {
	if conf.BusyRetries == 0 {
		return conn.SetBusyTimeout(conf.BusyTimeout)
	}

	logger := log.NewLogger(os.Stderr).WithNs("shell")
	pause := conf.BusyTimeout / time.Duration(conf.BusyRetries)

	return conn.SetBusyHandler(func(attempts int) bool {
		if attempts >= conf.BusyRetries {
			if conf.Verbose {
				logger.Warn("database is locked, giving up", log.KV{
					"attempts": attempts,
				})
			}
			return false
		}
		if conf.Verbose {
			logger.Info("database is locked, retrying", log.KV{
				"attempt": attempts + 1,
				"retries": conf.BusyRetries,
				"pause":   pause.String(),
			})
		}
		time.Sleep(pause)
		return true
	})
}
