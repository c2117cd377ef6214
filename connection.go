package sqlet

/*
#cgo LDFLAGS: -lsqlite3
#include <sqlite3.h>
#include <stdint.h>
#include <stdlib.h>

extern int sqletBusyTrampoline(void *ctx, int attempts);
extern int sqletExecTrampoline(void *ctx, int count, char **values, char **names);

static int sqlet_busy_handler_set(sqlite3 *db, uintptr_t handle) {
	return sqlite3_busy_handler(db, sqletBusyTrampoline, (void *)handle);
}

static int sqlet_busy_handler_clear(sqlite3 *db) {
	return sqlite3_busy_handler(db, NULL, NULL);
}

static int sqlet_exec(sqlite3 *db, const char *sql, uintptr_t handle) {
	return sqlite3_exec(db, sql, sqletExecTrampoline, (void *)handle, NULL);
}
*/
import "C"
import (
	"runtime/cgo"
	"strings"
	"time"
	"unsafe"
)

// Connection is an open connection to a SQLite database. It owns the
// native sqlite3 handle for its lifetime: the handle is valid from a
// successful Open until Close, and no method may be called after Close.
//
// A Connection may be handed from one goroutine to another, but its
// methods are not safe for concurrent use unless the database was opened
// with SetFullMutex; this package adds no locking of its own.
//
// https://www.sqlite.org/c3ref/sqlite3.html
type Connection struct {
	db   *C.sqlite3
	busy cgo.Handle // registered busy-handler closure, 0 when none
}

// Open opens a read-write connection to a new or existing database.
func Open(path string) (*Connection, error) {
	return OpenWithFlags(path, NewOpenFlags().SetCreate().SetReadWrite())
}

// OpenWithFlags opens a database connection with the given capability
// flags. When the native open reports failure the partially opened
// handle is closed before the error is returned.
//
// https://www.sqlite.org/c3ref/open.html
func OpenWithFlags(path string, flags OpenFlags) (*Connection, error) {
	if strings.ContainsRune(path, 0) {
		return nil, &Error{Message: "path contains an embedded NUL character"}
	}

	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	var db *C.sqlite3
	resCode := C.sqlite3_open_v2(cPath, &db, C.int(flags), nil)
	if resCode != C.SQLITE_OK {
		err := lastError(db, int(resCode))
		if db != nil {
			C.sqlite3_close(db)
		}
		return nil, err
	}

	return &Connection{db: db}, nil
}

// Close removes any registered busy handler and then releases the native
// handle. It is safe to call more than once. The busy handler is cleared
// first so the engine can never call into a closure that is about to be
// released.
//
// https://www.sqlite.org/c3ref/close.html
func (c *Connection) Close() error {
	if c.db == nil {
		return nil
	}

	_ = c.RemoveBusyHandler()

	// close_v2 defers the actual close until outstanding statements are
	// finalized, so teardown cannot strand the handle.
	resCode := C.sqlite3_close_v2(c.db)
	c.db = nil
	if resCode != C.SQLITE_OK {
		return &Error{Code: int(resCode), Message: "failed to close database"}
	}
	return nil
}

// Execute runs one or more SQL statements, discarding any rows they
// produce.
//
// https://www.sqlite.org/c3ref/exec.html
func (c *Connection) Execute(sql string) error {
	cSQL := C.CString(sql)
	defer C.free(unsafe.Pointer(cSQL))

	resCode := C.sqlite3_exec(c.db, cSQL, nil, nil, nil)
	if resCode != C.SQLITE_OK {
		return c.lastError(int(resCode))
	}
	return nil
}

// TextColumn is one column of a row delivered by Iterate. Value is nil
// exactly when the underlying value is SQL NULL; every non-NULL value is
// rendered as text regardless of its native storage class.
type TextColumn struct {
	Name  string
	Value *string
}

// Iterate runs the given SQL and invokes callback once per produced row
// with the row's (name, value) pairs in column order. If callback
// returns false no further rows are processed and iteration ends without
// error. For large results or non-text data prefer Prepare or Select.
//
// The callback runs on a stack frame owned by the engine. A panic inside
// it does not unwind across the C boundary: it is caught at the
// trampoline, iteration is aborted, and the panic resumes once the
// native call has returned.
func (c *Connection) Iterate(sql string, callback func(row []TextColumn) bool) error {
	cSQL := C.CString(sql)
	defer C.free(unsafe.Pointer(cSQL))

	// The closure is reachable from C only for the duration of this one
	// call; the handle is released on every exit path.
	state := &iterateState{callback: callback}
	handle := cgo.NewHandle(state)
	defer handle.Delete()

	resCode := C.sqlet_exec(c.db, cSQL, C.uintptr_t(handle))
	if state.panicked != nil {
		panic(state.panicked)
	}
	if state.stopped {
		// The engine reports SQLITE_ABORT when the callback stops
		// iteration early; that is not an error.
		return nil
	}
	if resCode != C.SQLITE_OK {
		return c.lastError(int(resCode))
	}
	return nil
}

// ChangeCount returns the number of rows inserted, updated, or deleted
// by the most recent INSERT, UPDATE, or DELETE statement.
//
// https://www.sqlite.org/c3ref/changes.html
func (c *Connection) ChangeCount() int {
	return int(C.sqlite3_changes(c.db))
}

// TotalChangeCount returns the total number of rows inserted, updated,
// and deleted by all INSERT, UPDATE, and DELETE statements since the
// connection was opened.
//
// https://www.sqlite.org/c3ref/total_changes.html
func (c *Connection) TotalChangeCount() int {
	return int(C.sqlite3_total_changes(c.db))
}

// LastInsertRowID returns the rowid of the most recent successful INSERT
// on this connection.
//
// https://www.sqlite.org/c3ref/last_insert_rowid.html
func (c *Connection) LastInsertRowID() int64 {
	return int64(C.sqlite3_last_insert_rowid(c.db))
}

// SetBusyHandler registers callback to be invoked whenever an operation
// is blocked by a competing lock. The callback receives the number of
// times it has been invoked for the same blocking event and reports
// whether the operation should be retried.
//
// At most one busy handler is active at a time: registering a new one
// first removes and releases the previous one, so a superseded closure
// can never be invoked again even if the new registration fails.
//
// https://www.sqlite.org/c3ref/busy_handler.html
func (c *Connection) SetBusyHandler(callback func(attempts int) bool) error {
	if err := c.RemoveBusyHandler(); err != nil {
		return err
	}

	handle := cgo.NewHandle(callback)
	resCode := C.sqlet_busy_handler_set(c.db, C.uintptr_t(handle))
	if resCode != C.SQLITE_OK {
		handle.Delete()
		return c.lastError(int(resCode))
	}
	c.busy = handle
	return nil
}

// SetBusyTimeout installs the engine's implicit busy handler, which
// retries blocked operations until the given duration has elapsed. Any
// custom handler registered with SetBusyHandler is replaced and
// released.
//
// https://www.sqlite.org/c3ref/busy_timeout.html
func (c *Connection) SetBusyTimeout(d time.Duration) error {
	resCode := C.sqlite3_busy_timeout(c.db, C.int(d/time.Millisecond))
	if resCode != C.SQLITE_OK {
		return c.lastError(int(resCode))
	}
	c.releaseBusyHandle()
	return nil
}

// RemoveBusyHandler clears any busy handler, custom or implicit, and
// releases the registered closure if there was one.
func (c *Connection) RemoveBusyHandler() error {
	resCode := C.sqlet_busy_handler_clear(c.db)
	c.releaseBusyHandle()
	if resCode != C.SQLITE_OK {
		return c.lastError(int(resCode))
	}
	return nil
}

// releaseBusyHandle frees the closure of the previously registered busy
// handler. It must be called only after the engine-side registration has
// been cleared or replaced.
func (c *Connection) releaseBusyHandle() {
	if c.busy != 0 {
		c.busy.Delete()
		c.busy = 0
	}
}

// lastError reads the engine's most recent error for this connection.
func (c *Connection) lastError(fallbackCode int) *Error {
	return lastError(c.db, fallbackCode)
}

func lastError(db *C.sqlite3, fallbackCode int) *Error {
	if db == nil {
		return &Error{Code: fallbackCode}
	}
	code := int(C.sqlite3_errcode(db))
	if code == codeOK {
		code = fallbackCode
	}
	return &Error{
		Code:    code,
		Message: C.GoString(C.sqlite3_errmsg(db)),
	}
}
