package sqlet

import "fmt"

// Primary result codes of the SQLite C API. Only the codes this package
// can plausibly surface are named; anything else is rendered numerically.
//
// https://www.sqlite.org/rescode.html
const (
	codeOK         = 0
	codeError      = 1
	codeInternal   = 2
	codePerm       = 3
	codeAbort      = 4
	codeBusy       = 5
	codeLocked     = 6
	codeNoMem      = 7
	codeReadOnly   = 8
	codeInterrupt  = 9
	codeIOErr      = 10
	codeCorrupt    = 11
	codeNotFound   = 12
	codeFull       = 13
	codeCantOpen   = 14
	codeProtocol   = 15
	codeSchema     = 17
	codeTooBig     = 18
	codeConstraint = 19
	codeMismatch   = 20
	codeMisuse     = 21
	codeAuth       = 23
	codeRange      = 25
	codeNotADB     = 26
	codeRow        = 100
	codeDone       = 101
)

var codeNames = map[int]string{
	codeOK:         "SQLITE_OK",
	codeError:      "SQLITE_ERROR",
	codeInternal:   "SQLITE_INTERNAL",
	codePerm:       "SQLITE_PERM",
	codeAbort:      "SQLITE_ABORT",
	codeBusy:       "SQLITE_BUSY",
	codeLocked:     "SQLITE_LOCKED",
	codeNoMem:      "SQLITE_NOMEM",
	codeReadOnly:   "SQLITE_READONLY",
	codeInterrupt:  "SQLITE_INTERRUPT",
	codeIOErr:      "SQLITE_IOERR",
	codeCorrupt:    "SQLITE_CORRUPT",
	codeNotFound:   "SQLITE_NOTFOUND",
	codeFull:       "SQLITE_FULL",
	codeCantOpen:   "SQLITE_CANTOPEN",
	codeProtocol:   "SQLITE_PROTOCOL",
	codeSchema:     "SQLITE_SCHEMA",
	codeTooBig:     "SQLITE_TOOBIG",
	codeConstraint: "SQLITE_CONSTRAINT",
	codeMismatch:   "SQLITE_MISMATCH",
	codeMisuse:     "SQLITE_MISUSE",
	codeAuth:       "SQLITE_AUTH",
	codeRange:      "SQLITE_RANGE",
	codeNotADB:     "SQLITE_NOTADB",
	codeRow:        "SQLITE_ROW",
	codeDone:       "SQLITE_DONE",
}

// codeName returns the symbolic name for a primary result code. Extended
// result codes fall back to their primary code's name.
func codeName(code int) string {
	if name, ok := codeNames[code]; ok {
		return name
	}
	if name, ok := codeNames[code&0xff]; ok {
		return fmt.Sprintf("%s(%d)", name, code)
	}
	return fmt.Sprintf("code %d", code)
}
