// Package sqlet is a safety and ergonomics layer over the SQLite C API.
//
// It lets a caller open a database, run statements, and read results as
// native typed values without ever touching a raw sqlite3 handle, a C
// string, or an unchecked callback pointer. Caller-supplied closures
// (busy handlers, row callbacks) are carried across the C boundary with
// runtime/cgo handles and fixed trampolines, and dynamically typed query
// results are extracted into static Go types through one closed,
// fallible conversion table.
//
// The package is intentionally thin: it does not implement the SQL
// dialect, query planning, or storage behavior, and it performs no
// parameter escaping on statement text. Prepared statements with typed
// binds are the tool for untrusted inputs.
//
//   - https://www.sqlite.org/cintro.html
//   - https://www.sqlite.org/c3ref/intro.html
package sqlet
