package repl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sqlet/sqlet"
	"github.com/sqlet/sqlet/internal/shell/config"
	"github.com/sqlet/sqlet/internal/util/sysutil"
)

type Repl struct {
	conf        config.Config
	conn        *sqlet.Connection
	ctx         context.Context
	stop        context.CancelFunc
	inTx        bool
	historyPath string
}

func NewRepl(
	ctx context.Context,
	stop context.CancelFunc,
	conf config.Config,
	conn *sqlet.Connection,
) Repl {
	return Repl{
		conf:        conf,
		conn:        conn,
		ctx:         ctx,
		stop:        stop,
		historyPath: filepath.Join(os.TempDir(), ".sqlet_history"),
	}
}

func (r *Repl) Start() error {
	fmt.Println()
	fmt.Printf("Opened %s\n", r.describeDatabase())
	fmt.Println(`Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Println()

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
			input := r.prompt()

			if input == "" {
				continue
			}

			if input == "exit" || input == ".exit" || input == ".quit" {
				r.Shutdown()
				return nil
			}

			if input == "clear" || input == ".clear" {
				sysutil.ClearTerminal()
				continue
			}

			if input == "help" || input == ".help" {
				cmdHelp()
				continue
			}

			if input == ".tables" {
				cmdQuery(r, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
				continue
			}

			if input == ".indexes" {
				cmdQuery(r, `SELECT name, tbl_name FROM sqlite_master WHERE type = 'index' ORDER BY name`)
				continue
			}

			if input == ".schema" || strings.HasPrefix(input, ".schema ") {
				cmdSchema(r, strings.TrimSpace(strings.TrimPrefix(input, ".schema")))
				continue
			}

			if strings.HasPrefix(input, ".columns") {
				cmdColumns(r, strings.TrimSpace(strings.TrimPrefix(input, ".columns")))
				continue
			}

			if strings.HasPrefix(input, ".count") {
				cmdCount(r, strings.TrimSpace(strings.TrimPrefix(input, ".count")))
				continue
			}

			if strings.HasPrefix(input, ".timeout") {
				cmdTimeout(r, strings.TrimSpace(strings.TrimPrefix(input, ".timeout")))
				continue
			}

			if strings.HasPrefix(input, ".") {
				fmt.Println("Unknown command, type .help for usage hints")
				continue
			}

			cmdQuery(r, input)
		}
	}
}

// Shutdown stops the REPL.
func (r *Repl) Shutdown() {
	r.stop()
}

// setInTx records whether the REPL currently sits inside an explicit
// transaction, which changes the prompt label.
func (r *Repl) setInTx(inTx bool) {
	r.inTx = inTx
}

func (r *Repl) describeDatabase() string {
	if r.conf.Path == ":memory:" {
		return "an in-memory database"
	}
	if r.conf.ReadOnly {
		return fmt.Sprintf("%s (read-only)", r.conf.Path)
	}
	return r.conf.Path
}

// prompt shows the prompt and reads the input from the user.
func (r *Repl) prompt() string {
	label := "sqlet> "
	if r.inTx {
		label = "sqlet(tx)> "
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(cmdHelpCompleter)

	if file, err := os.Open(r.historyPath); err == nil {
		_, _ = line.ReadHistory(file)
		file.Close()
	}

	prompt, err := line.Prompt(label)
	if err != nil {
		if err == liner.ErrPromptAborted {
			fmt.Println("CTRL+C pressed, exiting...")
			return ".quit"
		}
		return ""
	}

	line.AppendHistory(prompt)
	if file, err := os.Create(r.historyPath); err == nil {
		_, _ = line.WriteHistory(file)
		file.Close()
	}

	return strings.TrimSpace(prompt)
}
