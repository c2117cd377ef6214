package sqlet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatement(t *testing.T) {
	newConn := func(t *testing.T) *Connection {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}

	t.Run("BindAndStepRoundTrip", func(t *testing.T) {
		conn := newConn(t)
		require.NoError(t, conn.Execute(
			"CREATE TABLE kinds (i INTEGER, f REAL, s TEXT, b BLOB, n TEXT)",
		))

		stmt, err := conn.Prepare("INSERT INTO kinds VALUES (?, ?, ?, ?, ?)")
		require.NoError(t, err)
		defer stmt.Finalize()

		assert.Equal(t, 5, stmt.ParameterCount())
		require.NoError(t, stmt.BindInt64(1, 42))
		require.NoError(t, stmt.BindFloat64(2, 1.25))
		require.NoError(t, stmt.BindText(3, "text"))
		require.NoError(t, stmt.BindBlob(4, []byte{0x00, 0xff}))
		require.NoError(t, stmt.BindNull(5))

		hasRow, err := stmt.Step()
		require.NoError(t, err)
		assert.False(t, hasRow)

		sel := conn.Select("SELECT i, f, s, b, n FROM kinds")
		require.True(t, sel.Next())
		row := sel.Row()
		assert.Equal(t, int64(42), Get[int64](row, "i"))
		assert.Equal(t, 1.25, Get[float64](row, "f"))
		assert.Equal(t, "text", Get[string](row, "s"))
		assert.Equal(t, []byte{0x00, 0xff}, Get[[]byte](row, "b"))
		assert.True(t, row.Value(4).IsNull())
	})

	t.Run("ResetReusesBindings", func(t *testing.T) {
		conn := newConn(t)
		require.NoError(t, conn.Execute("CREATE TABLE t (a INT)"))

		stmt, err := conn.Prepare("INSERT INTO t VALUES (?)")
		require.NoError(t, err)
		defer stmt.Finalize()

		for i := int64(1); i <= 3; i++ {
			require.NoError(t, stmt.BindInt64(1, i))
			_, err := stmt.Step()
			require.NoError(t, err)
			require.NoError(t, stmt.Reset())
		}

		sel := conn.Select("SELECT COUNT(*) FROM t")
		require.True(t, sel.Next())
		assert.Equal(t, int64(3), Get[int64](sel.Row(), 0))
	})

	t.Run("ColumnMetadata", func(t *testing.T) {
		conn := newConn(t)
		require.NoError(t, conn.Execute("CREATE TABLE t (a INT, b TEXT)"))

		stmt, err := conn.Prepare("SELECT a, b FROM t")
		require.NoError(t, err)
		defer stmt.Finalize()

		assert.Equal(t, 2, stmt.ColumnCount())
		assert.Equal(t, "a", stmt.ColumnName(0))
		assert.Equal(t, "b", stmt.ColumnName(1))
		assert.True(t, stmt.ReadOnly())

		write, err := conn.Prepare("INSERT INTO t VALUES (1, 'x')")
		require.NoError(t, err)
		defer write.Finalize()
		assert.False(t, write.ReadOnly())
		assert.Equal(t, 0, write.ColumnCount())
	})

	t.Run("PrepareError", func(t *testing.T) {
		conn := newConn(t)
		_, err := conn.Prepare("SELECT FROM")
		assert.Error(t, err)
	})

	t.Run("DoubleFinalize", func(t *testing.T) {
		conn := newConn(t)
		stmt, err := conn.Prepare("SELECT 1")
		require.NoError(t, err)
		assert.NoError(t, stmt.Finalize())
		assert.NoError(t, stmt.Finalize())
	})

	t.Run("StepAfterFinalize", func(t *testing.T) {
		conn := newConn(t)
		stmt, err := conn.Prepare("SELECT 1")
		require.NoError(t, err)
		require.NoError(t, stmt.Finalize())

		_, err = stmt.Step()
		var engineErr *Error
		require.True(t, errors.As(err, &engineErr))
		assert.Equal(t, codeMisuse, engineErr.Code)
	})
}

func TestCursor(t *testing.T) {
	t.Run("ProducesRowsThenStaysExhausted", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Execute("CREATE TABLE t (a INT)"))
		require.NoError(t, conn.Execute("INSERT INTO t VALUES (10), (20)"))

		stmt, err := conn.Prepare("SELECT a FROM t ORDER BY a")
		require.NoError(t, err)
		defer stmt.Finalize()

		cur := stmt.Cursor()

		first, err := cur.Next()
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.Equal(t, Integer(10), first[0])

		second, err := cur.Next()
		require.NoError(t, err)
		assert.Equal(t, Integer(20), second[0])

		for i := 0; i < 3; i++ {
			values, err := cur.Next()
			assert.NoError(t, err)
			assert.Nil(t, values)
		}
	})
}
