package repl

import (
	"fmt"
	"strings"
	"time"

	"github.com/sqlet/sqlet"
	"github.com/sqlet/sqlet/internal/shell/styled"
)

// cmdSchema prints the CREATE statements stored in sqlite_master, for the
// whole database or for a single table.
func cmdSchema(r *Repl, tableName string) {
	if tableName == "" {
		printed := false
		err := r.conn.Iterate(
			`SELECT sql FROM sqlite_master WHERE sql IS NOT NULL ORDER BY name`,
			func(row []sqlet.TextColumn) bool {
				if row[0].Value != nil {
					fmt.Printf("%s;\n", *row[0].Value)
					printed = true
				}
				return true
			},
		)
		if err != nil {
			fmt.Println("Failed to read the schema:", err)
			return
		}
		if !printed {
			fmt.Println("The database is empty")
		}
		return
	}

	stmt, err := r.conn.Prepare(
		`SELECT sql FROM sqlite_master WHERE sql IS NOT NULL AND tbl_name = ? ORDER BY name`,
	)
	if err != nil {
		fmt.Println("Failed to read the schema:", err)
		return
	}
	defer stmt.Finalize()

	if err := stmt.BindText(1, tableName); err != nil {
		fmt.Println("Failed to read the schema:", err)
		return
	}

	printed := false
	for {
		more, err := stmt.Step()
		if err != nil {
			fmt.Println("Failed to read the schema:", err)
			return
		}
		if !more {
			break
		}
		if text, ok := stmt.ColumnValue(0).Text(); ok {
			fmt.Printf("%s;\n", text)
			printed = true
		}
	}
	if !printed {
		fmt.Printf("No schema found for %q\n", tableName)
	}
}

// cmdColumns lists the columns of a table via the pragma_table_info
// table-valued function. The table name goes in as a quoted text literal
// since identifiers cannot be bound.
func cmdColumns(r *Repl, tableName string) {
	if tableName == "" {
		fmt.Println("Usage: .columns [table_name]")
		return
	}
	cmdQuery(r, fmt.Sprintf(
		`SELECT name, type, "notnull", dflt_value, pk FROM pragma_table_info(%s)`,
		quoteTextLiteral(tableName),
	))
}

// cmdCount prints the row count of a table. Table names cannot be bound as
// parameters, so the identifier is quoted and inlined.
func cmdCount(r *Repl, tableName string) {
	if tableName == "" {
		fmt.Println("Usage: .count [table_name]")
		return
	}
	cmdQuery(r, fmt.Sprintf(
		`SELECT COUNT(*) AS count FROM %s`, quoteIdentifier(tableName),
	))
}

// cmdTimeout reconfigures how long blocked statements keep retrying.
func cmdTimeout(r *Repl, arg string) {
	if arg == "" {
		fmt.Println("Usage: .timeout [duration], e.g. .timeout 5s")
		return
	}

	d, err := time.ParseDuration(arg)
	if err != nil || d < 0 {
		fmt.Printf("Invalid duration %q, try something like 500ms or 5s\n", arg)
		return
	}

	if err := r.conn.SetBusyTimeout(d); err != nil {
		fmt.Println("Failed to set the timeout:", err)
		return
	}
	styled.DimmedColor().Printf("Blocked statements now retry for up to %s\n", d)
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteTextLiteral(text string) string {
	return `'` + strings.ReplaceAll(text, `'`, `''`) + `'`
}
