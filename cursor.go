package sqlet

// Cursor is a one-directional producer of result rows from a prepared
// statement. Once it reports exhaustion or an error it stays exhausted;
// there is no rewind.
type Cursor struct {
	stmt *Statement
	done bool
}

// Cursor wraps the statement in a forward-only row producer. The cursor
// borrows the statement; finalizing the statement ends the cursor.
func (s *Statement) Cursor() *Cursor {
	return &Cursor{stmt: s}
}

// Next advances to the next result row. It returns the row's values as
// owned copies, a nil slice once the statement has run to completion,
// and an error when the engine reports one while stepping.
func (cur *Cursor) Next() ([]Value, error) {
	if cur.done {
		return nil, nil
	}

	hasRow, err := cur.stmt.Step()
	if err != nil {
		cur.done = true
		return nil, err
	}
	if !hasRow {
		cur.done = true
		return nil, nil
	}

	row := make([]Value, cur.stmt.ColumnCount())
	for i := range row {
		row[i] = cur.stmt.ColumnValue(i)
	}
	return row, nil
}
