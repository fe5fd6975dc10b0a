// Package sqltest provides a scripted database/sql driver for
// exercising repository SQL without a live database. A Script holds an
// ordered list of expected statements; each executed statement must
// match the next step's SQL fragment and gets that step's canned rows
// or affected count back. Steps capture the SQL text and arguments they
// received so tests can assert on statement order and bindings.
package sqltest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Step scripts one expected statement. Match is a substring the SQL
// text must contain. Queries return Columns and Rows; statements return
// Affected. A non-nil Err fails the statement instead.
type Step struct {
	Match    string
	Columns  []string
	Rows     [][]driver.Value
	Affected int64
	Err      error

	// populated when the step executes
	SQL  string
	Args []driver.Value
}

// Script replays steps in order against every statement issued on the
// connection, regardless of whether it arrives inside a transaction.
type Script struct {
	mu         sync.Mutex
	steps      []*Step
	pos        int
	violations []string

	Committed  int
	RolledBack int
}

// NewScript builds a script from steps in execution order.
func NewScript(steps ...*Step) *Script {
	return &Script{steps: steps}
}

// DB opens a database handle backed by the script. Each handle issues
// all statements against the same script state.
func (s *Script) DB() *sql.DB {
	return sql.OpenDB(&connector{script: s})
}

// Verify reports script violations: statements that arrived out of
// order or matched no step, and steps that never ran.
func (s *Script) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.violations) > 0 {
		return fmt.Errorf("scripted statements violated: %s", strings.Join(s.violations, "; "))
	}
	if s.pos != len(s.steps) {
		return fmt.Errorf("executed %d of %d scripted statements", s.pos, len(s.steps))
	}
	return nil
}

func (s *Script) next(query string, args []driver.NamedValue) (*Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= len(s.steps) {
		err := fmt.Errorf("unscripted statement: %s", query)
		s.violations = append(s.violations, err.Error())
		return nil, err
	}

	step := s.steps[s.pos]
	s.pos++

	step.SQL = query
	step.Args = make([]driver.Value, len(args))
	for i, a := range args {
		step.Args[i] = a.Value
	}

	if !strings.Contains(query, step.Match) {
		err := fmt.Errorf("statement %d does not contain %q: %s", s.pos, step.Match, query)
		s.violations = append(s.violations, err.Error())
		return nil, err
	}

	if step.Err != nil {
		return nil, step.Err
	}
	return step, nil
}

func (s *Script) committed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Committed++
}

func (s *Script) rolledBack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RolledBack++
}

type connector struct {
	script *Script
}

func (c *connector) Connect(context.Context) (driver.Conn, error) {
	return &conn{script: c.script}, nil
}

func (c *connector) Driver() driver.Driver { return scriptedDriver{} }

type scriptedDriver struct{}

func (scriptedDriver) Open(string) (driver.Conn, error) {
	return nil, fmt.Errorf("scripted driver supports sql.OpenDB only")
}

type conn struct {
	script *Script
}

var (
	_ driver.QueryerContext = (*conn)(nil)
	_ driver.ExecerContext  = (*conn)(nil)
	_ driver.ConnBeginTx    = (*conn)(nil)
)

func (c *conn) Prepare(string) (driver.Stmt, error) {
	return nil, fmt.Errorf("prepared statements are not scripted")
}

func (c *conn) Close() error { return nil }

func (c *conn) Begin() (driver.Tx, error) {
	return &tx{script: c.script}, nil
}

func (c *conn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return c.Begin()
}

func (c *conn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	step, err := c.script.next(query, args)
	if err != nil {
		return nil, err
	}
	return &rows{columns: step.Columns, data: step.Rows}, nil
}

func (c *conn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	step, err := c.script.next(query, args)
	if err != nil {
		return nil, err
	}
	return driver.RowsAffected(step.Affected), nil
}

type tx struct {
	script *Script
}

func (t *tx) Commit() error {
	t.script.committed()
	return nil
}

func (t *tx) Rollback() error {
	t.script.rolledBack()
	return nil
}

type rows struct {
	columns []string
	data    [][]driver.Value
	pos     int
}

func (r *rows) Columns() []string { return r.columns }

func (r *rows) Close() error { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.pos])
	r.pos++
	return nil
}
