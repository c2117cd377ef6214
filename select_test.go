package sqlet

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	t.Run("ReadsTypedRow", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Execute("CREATE TABLE t (a INT, b TEXT)"))
		require.NoError(t, conn.Execute("INSERT INTO t VALUES (1, 'x')"))

		sel := conn.Select("SELECT a, b FROM t")
		require.True(t, sel.Next())

		row := sel.Row()
		a, err := TryGet[int64](row, "a")
		require.NoError(t, err)
		assert.Equal(t, int64(1), a)

		b, err := TryGet[string](row, "b")
		require.NoError(t, err)
		assert.Equal(t, "x", b)

		assert.False(t, sel.Next())
		assert.NoError(t, sel.Err())
	})

	t.Run("NameAndPositionAgree", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Execute("CREATE TABLE t (a INT, b TEXT, c REAL)"))
		require.NoError(t, conn.Execute("INSERT INTO t VALUES (7, 'seven', 7.5)"))

		sel := conn.Select("SELECT a, b, c FROM t")
		require.Equal(t, []string{"a", "b", "c"}, sel.Columns())
		require.True(t, sel.Next())
		row := sel.Row()

		for i, name := range sel.Columns() {
			byName, err := TryGet[Value](row, name)
			require.NoError(t, err)
			byPosition, err := TryGet[Value](row, i)
			require.NoError(t, err)
			assert.Equal(t, byName, byPosition)
		}
	})

	t.Run("SinglePassAfterExhaustion", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Execute("CREATE TABLE t (a INT)"))
		require.NoError(t, conn.Execute("INSERT INTO t VALUES (1), (2)"))

		sel := conn.Select("SELECT a FROM t")
		seen := 0
		for sel.Next() {
			seen++
		}
		assert.Equal(t, 2, seen)
		assert.NoError(t, sel.Err())

		assert.False(t, sel.Next())
		assert.False(t, sel.Next())
		assert.NoError(t, sel.Err())
	})

	t.Run("DeferredConstructionError", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		sel := conn.Select("SELECT a FROM missing_table")
		assert.False(t, sel.Next())

		var engineErr *Error
		require.True(t, errors.As(sel.Err(), &engineErr))
		assert.NotEmpty(t, engineErr.Message)

		// The error is delivered once; the sequence then stays finished.
		assert.False(t, sel.Next())
		assert.False(t, sel.Next())
	})

	t.Run("RowsOutliveTheSequence", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Execute("CREATE TABLE t (id INTEGER PRIMARY KEY, tag TEXT)"))

		tags := make([]string, 3)
		for i := range tags {
			tags[i] = uuid.NewString()
			require.NoError(t, conn.Execute("INSERT INTO t (tag) VALUES ('"+tags[i]+"')"))
		}

		var rows []Row
		sel := conn.Select("SELECT id, tag FROM t ORDER BY id")
		for sel.Next() {
			rows = append(rows, sel.Row())
		}
		require.NoError(t, sel.Err())
		require.Len(t, rows, 3)

		// The snapshots stay valid after exhaustion finalized the cursor.
		for i, row := range rows {
			assert.Equal(t, int64(i+1), Get[int64](row, "id"))
			assert.Equal(t, tags[i], Get[string](row, "tag"))
		}
	})

	t.Run("CloseEndsTheSequenceEarly", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Execute("CREATE TABLE t (a INT)"))
		require.NoError(t, conn.Execute("INSERT INTO t VALUES (1), (2), (3)"))

		sel := conn.Select("SELECT a FROM t")
		require.True(t, sel.Next())
		require.NoError(t, sel.Close())

		assert.False(t, sel.Next())
		assert.NoError(t, sel.Err())
	})

	t.Run("CloseKeepsTheDeferredError", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		sel := conn.Select("SELECT a FROM missing_table")
		require.NoError(t, sel.Close())

		var engineErr *Error
		require.True(t, errors.As(sel.Err(), &engineErr))
		assert.False(t, sel.Next())
	})
}
