package sqlet

import "fmt"

// Error is a failure reported by the SQLite engine. Code is the result
// code of the failed call and is zero when the engine did not provide
// one; Message is the engine's own description and is empty when the
// engine had none.
//
// https://www.sqlite.org/rescode.html
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Code != 0:
		return fmt.Sprintf("sqlet: %s (%s)", e.Message, codeName(e.Code))
	case e.Message != "":
		return fmt.Sprintf("sqlet: %s", e.Message)
	case e.Code != 0:
		return fmt.Sprintf("sqlet: %s", codeName(e.Code))
	}
	return "sqlet: unknown error"
}

// ConversionError is returned by TryGet when the requested column does
// not exist in the result set or its value cannot be converted to the
// requested type. Column describes the selector that failed.
type ConversionError struct {
	Column string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("sqlet: column %q could not be read", e.Column)
}
