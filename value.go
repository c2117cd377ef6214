package sqlet

import "fmt"

// Type identifies the storage class of a Value.
//
// https://www.sqlite.org/datatype3.html
type Type int

const (
	TypeNull Type = iota
	TypeInteger
	TypeFloat
	TypeText
	TypeBlob
)

// String returns the SQLite name of the storage class.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "NULL"
	case TypeInteger:
		return "INTEGER"
	case TypeFloat:
		return "REAL"
	case TypeText:
		return "TEXT"
	case TypeBlob:
		return "BLOB"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Value is a single dynamically typed SQLite value: NULL, a 64-bit
// integer, a 64-bit float, a text string, or a blob. Values returned by
// this package own their data; they stay valid after the statement that
// produced them advances or is finalized.
type Value struct {
	typ     Type
	integer int64
	float   float64
	text    string
	blob    []byte
}

// Null returns the NULL value.
func Null() Value {
	return Value{typ: TypeNull}
}

// Integer returns an INTEGER value.
func Integer(v int64) Value {
	return Value{typ: TypeInteger, integer: v}
}

// Float returns a REAL value.
func Float(v float64) Value {
	return Value{typ: TypeFloat, float: v}
}

// Text returns a TEXT value.
func Text(v string) Value {
	return Value{typ: TypeText, text: v}
}

// Blob returns a BLOB value. The slice is not copied.
func Blob(v []byte) Value {
	return Value{typ: TypeBlob, blob: v}
}

// Type returns the storage class of the value.
func (v Value) Type() Type {
	return v.typ
}

// IsNull reports whether the value is NULL.
func (v Value) IsNull() bool {
	return v.typ == TypeNull
}

// Int64 returns the value as an int64. It reports false unless the
// storage class is INTEGER.
func (v Value) Int64() (int64, bool) {
	if v.typ != TypeInteger {
		return 0, false
	}
	return v.integer, true
}

// Float64 returns the value as a float64. It reports false unless the
// storage class is REAL.
func (v Value) Float64() (float64, bool) {
	if v.typ != TypeFloat {
		return 0, false
	}
	return v.float, true
}

// Text returns the value as a string. It reports false unless the
// storage class is TEXT.
func (v Value) Text() (string, bool) {
	if v.typ != TypeText {
		return "", false
	}
	return v.text, true
}

// Blob returns the value as a byte slice. It reports false unless the
// storage class is BLOB.
func (v Value) Blob() ([]byte, bool) {
	if v.typ != TypeBlob {
		return nil, false
	}
	return v.blob, true
}

// String renders the value for display. It is not an extraction; use
// TryGet or the typed accessors to read values programmatically.
func (v Value) String() string {
	switch v.typ {
	case TypeNull:
		return "NULL"
	case TypeInteger:
		return fmt.Sprintf("%d", v.integer)
	case TypeFloat:
		return fmt.Sprintf("%g", v.float)
	case TypeText:
		return v.text
	case TypeBlob:
		return fmt.Sprintf("x'%x'", v.blob)
	}
	return "invalid"
}
