package repl

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/orsinium-labs/enum"
	"github.com/sqlet/sqlet"
	"github.com/sqlet/sqlet/internal/shell/styled"
	"github.com/sqlet/sqlet/internal/util/numutil"
)

// queryKind represents the kind of a given SQLite query.
type queryKind enum.Member[string]

var (
	queryKindRead     = queryKind{Value: "read"}
	queryKindWrite    = queryKind{Value: "write"}
	queryKindBegin    = queryKind{Value: "begin"}
	queryKindCommit   = queryKind{Value: "commit"}
	queryKindRollback = queryKind{Value: "rollback"}
)

// classifyQuery detects the kind of query between read, write, begin, commit,
// and rollback. Anything that is not transaction control is classified by
// compiling it and asking the engine whether it writes.
func classifyQuery(r *Repl, query string) (queryKind, error) {
	trimmed := strings.ToLower(strings.TrimSpace(query))

	switch {
	case strings.HasPrefix(trimmed, "begin"):
		return queryKindBegin, nil
	case strings.HasPrefix(trimmed, "commit"):
		return queryKindCommit, nil
	case strings.HasPrefix(trimmed, "rollback"), strings.HasPrefix(trimmed, "end transaction"):
		return queryKindRollback, nil
	}

	stmt, err := r.conn.Prepare(query)
	if err != nil {
		return queryKind{}, err
	}
	defer stmt.Finalize()

	if stmt.ReadOnly() {
		return queryKindRead, nil
	}
	return queryKindWrite, nil
}

func cmdQuery(r *Repl, input string) {
	tw := styled.NewTableWriter()

	kind, err := classifyQuery(r, input)
	if err != nil {
		renderError(tw, err)
		return
	}

	switch kind {
	case queryKindBegin:
		if err := r.conn.Execute(input); err != nil {
			renderError(tw, err)
			return
		}
		r.setInTx(true)
		renderOK(tw, "Transaction started")

	case queryKindCommit:
		if err := r.conn.Execute(input); err != nil {
			renderError(tw, err)
			return
		}
		r.setInTx(false)
		renderOK(tw, "Transaction committed")

	case queryKindRollback:
		if err := r.conn.Execute(input); err != nil {
			renderError(tw, err)
			return
		}
		r.setInTx(false)
		renderOK(tw, "Transaction rolled back")

	case queryKindWrite:
		if err := r.conn.Execute(input); err != nil {
			renderError(tw, err)
			return
		}
		tw.AppendHeader(table.Row{"-", "Rows Affected", "Last Insert ID"})
		tw.AppendRow(table.Row{"OK", r.conn.ChangeCount(), r.conn.LastInsertRowID()})
		fmt.Println(tw.Render())

	case queryKindRead:
		renderRead(r, tw, input)
	}
}

func renderRead(r *Repl, tw table.Writer, input string) {
	rows := r.conn.Select(input)
	defer rows.Close()

	count := int64(0)
	for rows.Next() {
		if count == 0 {
			header := table.Row{}
			for _, col := range rows.Columns() {
				header = append(header, col)
			}
			tw.AppendHeader(header)
		}

		row := rows.Row()
		rendered := table.Row{}
		for i := 0; i < row.Len(); i++ {
			rendered = append(rendered, renderValue(row.Value(i)))
		}
		tw.AppendRow(rendered)
		count++
	}
	if err := rows.Err(); err != nil {
		renderError(tw, err)
		return
	}

	if count == 0 {
		renderOK(tw, "No rows returned")
		return
	}
	fmt.Println(tw.Render())
	styled.DimmedColor().Printf("%s row(s)\n", numutil.IntWithCommas(count))
}

func renderValue(value sqlet.Value) string {
	if value.IsNull() {
		return "NULL"
	}
	return value.String()
}

func renderOK(tw table.Writer, msg string) {
	tw.AppendHeader(table.Row{"OK"})
	tw.AppendRow(table.Row{msg})
	fmt.Println(tw.Render())
}

func renderError(tw table.Writer, err error) {
	tw.AppendHeader(table.Row{"Error"})
	tw.AppendRow(table.Row{err.Error()})
	fmt.Println(tw.Render())
}
