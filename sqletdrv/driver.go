// Package sqletdrv provides a database/sql driver backed by sqlet.
//
// This package exists to take advantage of the connection pooling that
// database/sql provides while all access to the engine still goes
// through the sqlet safety layer. Import it for its side effect and open
// with the "sqlet" driver name:
//
//	import _ "github.com/sqlet/sqlet/sqletdrv"
//
//	db, err := sql.Open("sqlet", "/path/to/file.db")
package sqletdrv

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"time"

	"github.com/sqlet/sqlet"
)

var (
	_ driver.Driver    = (*Driver)(nil)
	_ driver.Connector = (*Connector)(nil)
	_ driver.Conn      = (*Conn)(nil)
	_ driver.Stmt      = (*Stmt)(nil)
	_ driver.Rows      = (*Rows)(nil)
	_ driver.Tx        = (*Tx)(nil)
)

func init() {
	sql.Register("sqlet", &Driver{})
}

// Driver implements the database/sql/driver interface.
type Driver struct{}

// Open creates a new connection to the database at the given path.
func (d *Driver) Open(path string) (driver.Conn, error) {
	return NewConnector(path).Connect(context.Background())
}

type connectorOption func(*Connector)

// WithPostConnectQueries sets a slice of queries to be executed after a
// connection is established.
func WithPostConnectQueries(queries []string) connectorOption {
	return func(connector *Connector) {
		connector.postConnectQueries = queries
	}
}

// WithBusyTimeout overrides the busy timeout installed on every new
// connection. The default is 5 seconds; zero disables it.
func WithBusyTimeout(d time.Duration) connectorOption {
	return func(connector *Connector) {
		connector.busyTimeout = d
	}
}

// Connector implements the database/sql/driver.Connector interface.
type Connector struct {
	path               string
	busyTimeout        time.Duration
	postConnectQueries []string
}

// NewConnector creates a new connector for the database at the given
// path.
func NewConnector(path string, options ...connectorOption) *Connector {
	connector := &Connector{
		path:        path,
		busyTimeout: 5 * time.Second,
	}

	for _, option := range options {
		option(connector)
	}

	return connector
}

// Connect opens a new sqlet connection. Each driver connection owns its
// own native handle; database/sql guarantees one goroutine at a time per
// connection, which matches sqlet's threading contract.
func (connector *Connector) Connect(_ context.Context) (driver.Conn, error) {
	conn, err := sqlet.Open(connector.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	if connector.busyTimeout > 0 {
		if err := conn.SetBusyTimeout(connector.busyTimeout); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	for _, query := range connector.postConnectQueries {
		if err := conn.Execute(query); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf(`failed to execute %q post-connect query: %w`, query, err)
		}
	}

	return &Conn{conn: conn}, nil
}

// Driver returns the driver.
func (connector *Connector) Driver() driver.Driver {
	return &Driver{}
}

// Conn implements the database/sql/driver.Conn interface.
type Conn struct {
	conn *sqlet.Connection
}

// RawConn returns the underlying sqlet connection.
func (c *Conn) RawConn() *sqlet.Connection {
	return c.conn
}

// Close closes the connection.
func (c *Conn) Close() error {
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

// Prepare compiles the query into a reusable statement.
func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	stmt, err := c.conn.Prepare(query)
	if err != nil {
		return nil, err
	}
	return &Stmt{conn: c.conn, stmt: stmt}, nil
}

// Begin starts a transaction.
func (c *Conn) Begin() (driver.Tx, error) {
	if err := c.conn.Execute("BEGIN"); err != nil {
		return nil, err
	}
	return &Tx{conn: c.conn}, nil
}

// Tx implements the database/sql/driver.Tx interface.
type Tx struct {
	conn *sqlet.Connection
}

func (tx *Tx) Commit() error {
	return tx.conn.Execute("COMMIT")
}

func (tx *Tx) Rollback() error {
	return tx.conn.Execute("ROLLBACK")
}

// Stmt implements the database/sql/driver.Stmt interface.
type Stmt struct {
	conn *sqlet.Connection
	stmt *sqlet.Statement
}

func (s *Stmt) Close() error {
	return s.stmt.Finalize()
}

func (s *Stmt) NumInput() int {
	return s.stmt.ParameterCount()
}

// bind resets the statement and binds args to its 1-based parameters.
func (s *Stmt) bind(args []driver.Value) error {
	if err := s.stmt.Reset(); err != nil {
		return err
	}

	for i, arg := range args {
		index := i + 1
		var err error
		switch value := arg.(type) {
		case nil:
			err = s.stmt.BindNull(index)
		case int64:
			err = s.stmt.BindInt64(index, value)
		case float64:
			err = s.stmt.BindFloat64(index, value)
		case bool:
			n := int64(0)
			if value {
				n = 1
			}
			err = s.stmt.BindInt64(index, n)
		case string:
			err = s.stmt.BindText(index, value)
		case []byte:
			err = s.stmt.BindBlob(index, value)
		case time.Time:
			err = s.stmt.BindText(index, value.Format(time.RFC3339Nano))
		default:
			err = fmt.Errorf("unsupported bind type %T at parameter %d", arg, index)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Exec runs the statement to completion without collecting rows.
func (s *Stmt) Exec(args []driver.Value) (driver.Result, error) {
	if err := s.bind(args); err != nil {
		return nil, err
	}

	for {
		hasRow, err := s.stmt.Step()
		if err != nil {
			_ = s.stmt.Reset()
			return nil, err
		}
		if !hasRow {
			break
		}
	}

	result := execResult{
		lastInsertID: s.conn.LastInsertRowID(),
		rowsAffected: int64(s.conn.ChangeCount()),
	}
	if err := s.stmt.Reset(); err != nil {
		return nil, err
	}
	return result, nil
}

// Query starts the statement and returns its rows.
func (s *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	if err := s.bind(args); err != nil {
		return nil, err
	}

	columns := make([]string, s.stmt.ColumnCount())
	for i := range columns {
		columns[i] = s.stmt.ColumnName(i)
	}
	return &Rows{stmt: s.stmt, columns: columns}, nil
}

type execResult struct {
	lastInsertID int64
	rowsAffected int64
}

func (r execResult) LastInsertId() (int64, error) {
	return r.lastInsertID, nil
}

func (r execResult) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

// Rows implements the database/sql/driver.Rows interface over a stepping
// statement.
type Rows struct {
	stmt    *sqlet.Statement
	columns []string
	done    bool
}

func (r *Rows) Columns() []string {
	return r.columns
}

// Close rewinds the statement so database/sql can reuse it.
func (r *Rows) Close() error {
	return r.stmt.Reset()
}

func (r *Rows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}

	hasRow, err := r.stmt.Step()
	if err != nil {
		r.done = true
		return err
	}
	if !hasRow {
		r.done = true
		return io.EOF
	}

	for i := range dest {
		value := r.stmt.ColumnValue(i)
		switch value.Type() {
		case sqlet.TypeInteger:
			n, _ := value.Int64()
			dest[i] = n
		case sqlet.TypeFloat:
			f, _ := value.Float64()
			dest[i] = f
		case sqlet.TypeText:
			s, _ := value.Text()
			dest[i] = s
		case sqlet.TypeBlob:
			b, _ := value.Blob()
			dest[i] = b
		default:
			dest[i] = nil
		}
	}
	return nil
}
