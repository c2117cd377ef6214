package sqlet

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnection(t *testing.T) {
	t.Run("OpenClose", func(t *testing.T) {
		conn, err := Open(":memory:")
		assert.NoError(t, err)
		assert.NotNil(t, conn)
		assert.NoError(t, conn.Close())
		assert.NoError(t, conn.Close())
	})

	t.Run("OpenReadOnlyMissingPath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.db")

		_, err := OpenWithFlags(path, NewOpenFlags().SetReadOnly())
		require.Error(t, err)

		var engineErr *Error
		require.True(t, errors.As(err, &engineErr))
		assert.NotZero(t, engineErr.Code)
	})

	t.Run("OpenCreateLeavesFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "created.db")

		conn, err := OpenWithFlags(path, NewOpenFlags().SetCreate().SetReadWrite())
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Execute("CREATE TABLE t (a INT)"))
		assert.FileExists(t, path)
	})

	t.Run("OpenPathWithNUL", func(t *testing.T) {
		_, err := Open("bad\x00path.db")
		require.Error(t, err)

		var engineErr *Error
		require.True(t, errors.As(err, &engineErr))
		assert.Contains(t, engineErr.Message, "NUL")
	})

	t.Run("ExecuteAndChangeCounts", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.Execute("CREATE TABLE t (a INT, b TEXT)"))
		require.NoError(t, conn.Execute("INSERT INTO t VALUES (1, 'x')"))
		assert.Equal(t, 1, conn.ChangeCount())
		assert.Equal(t, int64(1), conn.LastInsertRowID())

		require.NoError(t, conn.Execute("INSERT INTO t VALUES (2, 'y'); INSERT INTO t VALUES (3, 'z')"))
		assert.Equal(t, 1, conn.ChangeCount())
		assert.Equal(t, 3, conn.TotalChangeCount())
	})

	t.Run("ExecuteError", func(t *testing.T) {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		defer conn.Close()

		err = conn.Execute("NOT VALID SQL")
		require.Error(t, err)

		var engineErr *Error
		require.True(t, errors.As(err, &engineErr))
		assert.NotZero(t, engineErr.Code)
		assert.NotEmpty(t, engineErr.Message)
	})
}

func TestIterate(t *testing.T) {
	newFixture := func(t *testing.T) *Connection {
		conn, err := Open(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })

		require.NoError(t, conn.Execute(`
			CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, email TEXT);
			INSERT INTO users (name, email) VALUES ('alice', 'alice@example.com');
			INSERT INTO users (name, email) VALUES ('bob', NULL);
			INSERT INTO users (name, email) VALUES ('carol', 'carol@example.com');
		`))
		return conn
	}

	t.Run("DeliversTextPairsInColumnOrder", func(t *testing.T) {
		conn := newFixture(t)

		var rows [][]TextColumn
		err := conn.Iterate("SELECT id, name, email FROM users ORDER BY id", func(row []TextColumn) bool {
			rows = append(rows, row)
			return true
		})
		require.NoError(t, err)
		require.Len(t, rows, 3)

		first := rows[0]
		require.Len(t, first, 3)
		assert.Equal(t, "id", first[0].Name)
		assert.Equal(t, "name", first[1].Name)
		assert.Equal(t, "email", first[2].Name)

		// Integers arrive as text through this path.
		require.NotNil(t, first[0].Value)
		assert.Equal(t, "1", *first[0].Value)
		assert.Equal(t, "alice", *first[1].Value)
	})

	t.Run("NULLBecomesNilValue", func(t *testing.T) {
		conn := newFixture(t)

		var emails []*string
		err := conn.Iterate("SELECT email FROM users ORDER BY id", func(row []TextColumn) bool {
			emails = append(emails, row[0].Value)
			return true
		})
		require.NoError(t, err)
		require.Len(t, emails, 3)
		assert.NotNil(t, emails[0])
		assert.Nil(t, emails[1])
		assert.NotNil(t, emails[2])
	})

	t.Run("FalseStopsWithoutError", func(t *testing.T) {
		conn := newFixture(t)

		invocations := 0
		err := conn.Iterate("SELECT id FROM users ORDER BY id", func(row []TextColumn) bool {
			invocations++
			return false
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, invocations)
	})

	t.Run("CallbackPanicResumesAfterTheNativeCall", func(t *testing.T) {
		conn := newFixture(t)

		assert.PanicsWithValue(t, "boom", func() {
			_ = conn.Iterate("SELECT id FROM users", func(row []TextColumn) bool {
				panic("boom")
			})
		})

		// The connection stays usable afterwards.
		assert.NoError(t, conn.Execute("INSERT INTO users (name) VALUES ('dave')"))
	})

	t.Run("BadQueryReturnsEngineError", func(t *testing.T) {
		conn := newFixture(t)

		err := conn.Iterate("SELECT FROM nothing", func(row []TextColumn) bool { return true })
		require.Error(t, err)

		var engineErr *Error
		assert.True(t, errors.As(err, &engineErr))
	})
}

func TestBusyHandler(t *testing.T) {
	// Two connections to the same database file; the writer holds the
	// write lock so the other side's BEGIN IMMEDIATE reports contention.
	newContended := func(t *testing.T) (*Connection, *Connection) {
		path := filepath.Join(t.TempDir(), "contended.db")

		writer, err := Open(path)
		require.NoError(t, err)
		t.Cleanup(func() { writer.Close() })
		require.NoError(t, writer.Execute("CREATE TABLE t (a INT)"))

		blocked, err := Open(path)
		require.NoError(t, err)
		t.Cleanup(func() { blocked.Close() })

		require.NoError(t, writer.Execute("BEGIN IMMEDIATE"))
		return writer, blocked
	}

	t.Run("HandlerSeesAttemptsAndStopsTheRetryLoop", func(t *testing.T) {
		_, blocked := newContended(t)

		var attempts []int
		require.NoError(t, blocked.SetBusyHandler(func(n int) bool {
			attempts = append(attempts, n)
			return len(attempts) < 3
		}))

		err := blocked.Execute("BEGIN IMMEDIATE")
		require.Error(t, err)

		var engineErr *Error
		require.True(t, errors.As(err, &engineErr))
		assert.Equal(t, codeBusy, engineErr.Code&0xff)
		assert.Equal(t, []int{0, 1, 2}, attempts)
	})

	t.Run("ReplacementSilencesTheOldHandler", func(t *testing.T) {
		_, blocked := newContended(t)

		oldCalls := 0
		require.NoError(t, blocked.SetBusyHandler(func(n int) bool {
			oldCalls++
			return false
		}))

		newCalls := 0
		require.NoError(t, blocked.SetBusyHandler(func(n int) bool {
			newCalls++
			return false
		}))

		require.Error(t, blocked.Execute("BEGIN IMMEDIATE"))
		assert.Zero(t, oldCalls)
		assert.Equal(t, 1, newCalls)
	})

	t.Run("RemoveLeavesNoHandler", func(t *testing.T) {
		_, blocked := newContended(t)

		calls := 0
		require.NoError(t, blocked.SetBusyHandler(func(n int) bool {
			calls++
			return true
		}))
		require.NoError(t, blocked.RemoveBusyHandler())

		require.Error(t, blocked.Execute("BEGIN IMMEDIATE"))
		assert.Zero(t, calls)
	})

	t.Run("TimeoutReplacesCustomHandler", func(t *testing.T) {
		_, blocked := newContended(t)

		calls := 0
		require.NoError(t, blocked.SetBusyHandler(func(n int) bool {
			calls++
			return true
		}))
		require.NoError(t, blocked.SetBusyTimeout(10*time.Millisecond))

		require.Error(t, blocked.Execute("BEGIN IMMEDIATE"))
		assert.Zero(t, calls)
	})

	t.Run("PanickingHandlerFailsTheBlockedCall", func(t *testing.T) {
		_, blocked := newContended(t)

		require.NoError(t, blocked.SetBusyHandler(func(n int) bool {
			panic("busy handler panic")
		}))

		err := blocked.Execute("BEGIN IMMEDIATE")
		require.Error(t, err)

		var engineErr *Error
		require.True(t, errors.As(err, &engineErr))
		assert.Equal(t, codeBusy, engineErr.Code&0xff)
	})
}
