package sqlet

/*
#include <sqlite3.h>
#include <stdlib.h>

static int sqlet_bind_text(sqlite3_stmt *stmt, int index, const char *value, int n) {
	return sqlite3_bind_text(stmt, index, value, n, SQLITE_TRANSIENT);
}

static int sqlet_bind_blob(sqlite3_stmt *stmt, int index, const void *value, int n) {
	return sqlite3_bind_blob(stmt, index, value, n, SQLITE_TRANSIENT);
}
*/
import "C"
import "unsafe"

// Statement is a prepared statement. Its lifetime is bounded by the
// Connection that compiled it; Finalize releases it.
//
// https://www.sqlite.org/c3ref/stmt.html
type Statement struct {
	conn *Connection
	stmt *C.sqlite3_stmt
}

// Prepare compiles the given SQL into a prepared statement.
//
// https://www.sqlite.org/c3ref/prepare.html
func (c *Connection) Prepare(sql string) (*Statement, error) {
	cSQL := C.CString(sql)
	defer C.free(unsafe.Pointer(cSQL))

	var stmt *C.sqlite3_stmt
	resCode := C.sqlite3_prepare_v2(c.db, cSQL, C.int(-1), &stmt, nil)
	if resCode != C.SQLITE_OK {
		return nil, c.lastError(int(resCode))
	}
	return &Statement{conn: c, stmt: stmt}, nil
}

// ReadOnly reports whether the statement makes no direct changes to the
// database.
//
// https://www.sqlite.org/c3ref/stmt_readonly.html
func (s *Statement) ReadOnly() bool {
	return C.sqlite3_stmt_readonly(s.stmt) != 0
}

// ParameterCount returns the number of SQL parameters in the statement.
//
// https://www.sqlite.org/c3ref/bind_parameter_count.html
func (s *Statement) ParameterCount() int {
	return int(C.sqlite3_bind_parameter_count(s.stmt))
}

// BindInt64 binds an int64 to the 1-based parameter index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (s *Statement) BindInt64(index int, value int64) error {
	return s.bindResult(C.sqlite3_bind_int64(s.stmt, C.int(index), C.sqlite3_int64(value)))
}

// BindFloat64 binds a float64 to the 1-based parameter index.
func (s *Statement) BindFloat64(index int, value float64) error {
	return s.bindResult(C.sqlite3_bind_double(s.stmt, C.int(index), C.double(value)))
}

// BindText binds a string to the 1-based parameter index. The engine
// keeps its own copy of the text.
func (s *Statement) BindText(index int, value string) error {
	cValue := C.CString(value)
	defer C.free(unsafe.Pointer(cValue))
	return s.bindResult(C.sqlet_bind_text(s.stmt, C.int(index), cValue, C.int(len(value))))
}

// BindBlob binds a byte slice to the 1-based parameter index. The engine
// keeps its own copy of the bytes; an empty slice binds a zero-length
// blob, not NULL.
func (s *Statement) BindBlob(index int, value []byte) error {
	if len(value) == 0 {
		return s.bindResult(C.sqlite3_bind_zeroblob(s.stmt, C.int(index), 0))
	}
	return s.bindResult(C.sqlet_bind_blob(s.stmt, C.int(index), unsafe.Pointer(&value[0]), C.int(len(value))))
}

// BindNull binds NULL to the 1-based parameter index.
func (s *Statement) BindNull(index int) error {
	return s.bindResult(C.sqlite3_bind_null(s.stmt, C.int(index)))
}

func (s *Statement) bindResult(resCode C.int) error {
	if resCode != C.SQLITE_OK {
		return s.conn.lastError(int(resCode))
	}
	return nil
}

// Step advances the statement, reporting true while a new result row is
// available and false once the statement has run to completion.
//
// https://www.sqlite.org/c3ref/step.html
func (s *Statement) Step() (bool, error) {
	if s.stmt == nil {
		// Stepping a finalized statement must fail in Go, not hand the
		// engine a NULL pointer.
		return false, &Error{Code: codeMisuse, Message: "statement has been finalized"}
	}
	switch resCode := C.sqlite3_step(s.stmt); resCode {
	case C.SQLITE_ROW:
		return true, nil
	case C.SQLITE_DONE:
		return false, nil
	default:
		return false, s.conn.lastError(int(resCode))
	}
}

// Reset rewinds the statement so it can be executed again. Bindings are
// kept.
//
// https://www.sqlite.org/c3ref/reset.html
func (s *Statement) Reset() error {
	if resCode := C.sqlite3_reset(s.stmt); resCode != C.SQLITE_OK {
		return s.conn.lastError(int(resCode))
	}
	return nil
}

// ColumnCount returns the number of columns in the statement's result
// set, zero for statements that return no data.
//
// https://www.sqlite.org/c3ref/column_count.html
func (s *Statement) ColumnCount() int {
	return int(C.sqlite3_column_count(s.stmt))
}

// ColumnName returns the name of the column at the given zero-based
// index.
//
// https://www.sqlite.org/c3ref/column_name.html
func (s *Statement) ColumnName(index int) string {
	return C.GoString(C.sqlite3_column_name(s.stmt, C.int(index)))
}

// ColumnType returns the storage class of the current row's value at the
// given zero-based index. It is only meaningful after Step has reported
// a row.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (s *Statement) ColumnType(index int) Type {
	switch C.sqlite3_column_type(s.stmt, C.int(index)) {
	case C.SQLITE_INTEGER:
		return TypeInteger
	case C.SQLITE_FLOAT:
		return TypeFloat
	case C.SQLITE_TEXT:
		return TypeText
	case C.SQLITE_BLOB:
		return TypeBlob
	default:
		return TypeNull
	}
}

// ColumnValue returns the current row's value at the given zero-based
// index as an owned Value that stays valid after the statement advances.
func (s *Statement) ColumnValue(index int) Value {
	switch s.ColumnType(index) {
	case TypeInteger:
		return Integer(int64(C.sqlite3_column_int64(s.stmt, C.int(index))))
	case TypeFloat:
		return Float(float64(C.sqlite3_column_double(s.stmt, C.int(index))))
	case TypeText:
		return Text(s.columnText(index))
	case TypeBlob:
		return Blob(s.columnBlob(index))
	default:
		return Null()
	}
}

func (s *Statement) columnText(index int) string {
	text := (*C.char)(unsafe.Pointer(C.sqlite3_column_text(s.stmt, C.int(index))))
	if text == nil {
		return ""
	}
	length := C.sqlite3_column_bytes(s.stmt, C.int(index))
	return C.GoStringN(text, length)
}

func (s *Statement) columnBlob(index int) []byte {
	size := C.sqlite3_column_bytes(s.stmt, C.int(index))
	if size <= 0 {
		return nil
	}
	data := C.sqlite3_column_blob(s.stmt, C.int(index))
	if data == nil {
		return nil
	}
	return C.GoBytes(data, size)
}

// Finalize releases the statement. It is safe to call more than once.
//
// https://www.sqlite.org/c3ref/finalize.html
func (s *Statement) Finalize() error {
	if s.stmt == nil {
		return nil
	}
	resCode := C.sqlite3_finalize(s.stmt)
	s.stmt = nil
	if resCode != C.SQLITE_OK {
		return s.conn.lastError(int(resCode))
	}
	return nil
}
