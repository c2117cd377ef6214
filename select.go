package sqlet

// Select is a lazy, single-pass sequence over the rows of a query. It is
// produced by Connection.Select; a failed construction is deferred into
// the sequence itself and surfaces through Err after the first call to
// Next returns false.
//
// The usual shape mirrors bufio.Scanner:
//
//	sel := conn.Select("SELECT a, b FROM t")
//	for sel.Next() {
//		row := sel.Row()
//		...
//	}
//	if err := sel.Err(); err != nil {
//		...
//	}
//
// Once exhausted, in error, or closed, the sequence is finished for
// good: further calls to Next report false and there is no rewind.
type Select struct {
	stmt    *Statement
	cursor  *Cursor
	columns []string
	index   map[string]int
	pending error
	row     Row
	err     error
	done    bool
}

// Select prepares the query and returns its rows as a lazy sequence.
// Unlike Prepare, a compilation failure is not returned here; it is
// yielded by the sequence instead, which keeps simple read loops free of
// a second error path.
func (c *Connection) Select(sql string) *Select {
	stmt, err := c.Prepare(sql)
	if err != nil {
		return &Select{pending: err}
	}

	columns := make([]string, stmt.ColumnCount())
	index := make(map[string]int, len(columns))
	for i := range columns {
		name := stmt.ColumnName(i)
		columns[i] = name
		index[name] = i
	}

	return &Select{
		stmt:    stmt,
		cursor:  stmt.Cursor(),
		columns: columns,
		index:   index,
	}
}

// Next advances to the next row, reporting false when the sequence is
// finished. A false report means either clean exhaustion or a failure;
// consult Err to tell them apart.
func (s *Select) Next() bool {
	if s.done {
		return false
	}

	if s.pending != nil {
		s.err = s.pending
		s.pending = nil
		s.done = true
		return false
	}

	values, err := s.cursor.Next()
	if err != nil {
		s.err = err
		s.finish()
		return false
	}
	if values == nil {
		s.finish()
		return false
	}

	s.row = Row{values: values, index: s.index}
	return true
}

// Row returns the row produced by the latest successful Next. The row is
// an owned snapshot: it stays valid after the sequence advances or ends.
func (s *Select) Row() Row {
	return s.row
}

// Err returns the first error encountered by the sequence, including a
// deferred construction error, or nil after a clean exhaustion.
func (s *Select) Err() error {
	return s.err
}

// Columns returns the result column names in positional order. It is
// empty when construction failed.
func (s *Select) Columns() []string {
	return s.columns
}

// Close finishes the sequence early and releases the underlying
// statement. It is safe to call at any point, including after
// exhaustion.
func (s *Select) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	if s.pending != nil {
		// A deferred construction error stays observable through Err
		// even when the sequence is closed before its first advance.
		s.err = s.pending
		s.pending = nil
	}
	if s.stmt != nil {
		return s.stmt.Finalize()
	}
	return nil
}

func (s *Select) finish() {
	s.done = true
	if s.stmt != nil {
		_ = s.stmt.Finalize()
	}
}
