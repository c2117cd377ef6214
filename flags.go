package sqlet

// OpenFlags select the capabilities of a connection opened with
// OpenWithFlags. The zero value carries no flags; each setter returns an
// updated copy so flags compose fluently:
//
//	sqlet.NewOpenFlags().SetCreate().SetReadWrite()
//
// Read-only and read-write are mutually exclusive in effect; the engine,
// not this package, enforces that.
//
// https://www.sqlite.org/c3ref/open.html
type OpenFlags int

// The numeric values mirror the SQLITE_OPEN_* constants of the C API.
const (
	openReadOnly  OpenFlags = 0x00000001
	openReadWrite OpenFlags = 0x00000002
	openCreate    OpenFlags = 0x00000004
	openNoMutex   OpenFlags = 0x00008000
	openFullMutex OpenFlags = 0x00010000
)

// NewOpenFlags returns flags with no capability bits set.
func NewOpenFlags() OpenFlags {
	return 0
}

// SetCreate makes open create the database if it does not exist.
func (f OpenFlags) SetCreate() OpenFlags {
	return f | openCreate
}

// SetReadOnly opens the database for reading only.
func (f OpenFlags) SetReadOnly() OpenFlags {
	return f | openReadOnly
}

// SetReadWrite opens the database for reading and writing.
func (f OpenFlags) SetReadWrite() OpenFlags {
	return f | openReadWrite
}

// SetFullMutex opens the database in the serialized threading mode, which
// makes the connection safe to use from multiple goroutines without
// external locking.
//
// https://www.sqlite.org/threadsafe.html
func (f OpenFlags) SetFullMutex() OpenFlags {
	return f | openFullMutex
}

// SetNoMutex opens the database in the multi-thread threading mode; the
// caller must then guarantee the connection is used by one goroutine at a
// time.
//
// https://www.sqlite.org/threadsafe.html
func (f OpenFlags) SetNoMutex() OpenFlags {
	return f | openNoMutex
}
