package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"testing"
	"time"
)

// emptyDriver is a stub database driver whose every query returns zero
// rows, standing in for a store from which the targeted row has already
// been deleted.
type emptyDriver struct{}
type emptyConn struct{}
type emptyTx struct{}
type emptyStmt struct{}
type emptyRows struct{}

func (emptyDriver) Open(string) (driver.Conn, error)  { return emptyConn{}, nil }
func (emptyConn) Prepare(string) (driver.Stmt, error) { return emptyStmt{}, nil }
func (emptyConn) Begin() (driver.Tx, error)           { return emptyTx{}, nil }
func (emptyConn) Close() error                        { return nil }
func (emptyTx) Commit() error                         { return nil }
func (emptyTx) Rollback() error                       { return nil }
func (emptyStmt) Close() error                        { return nil }
func (emptyStmt) NumInput() int                       { return -1 }
func (emptyStmt) Exec([]driver.Value) (driver.Result, error) {
	return driver.RowsAffected(0), nil
}
func (emptyStmt) Query([]driver.Value) (driver.Rows, error) { return emptyRows{}, nil }
func (emptyRows) Columns() []string                         { return nil }
func (emptyRows) Close() error                              { return nil }
func (emptyRows) Next([]driver.Value) error                 { return io.EOF }

func init() { sql.Register("emptyrows", emptyDriver{}) }

func emptyDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("emptyrows", "")
	if err != nil {
		t.Fatalf("open stub db: %v", err)
	}
	return db
}

// A lease released concurrently must surface as not-found, never as a
// successful status change.
func TestTransitionVanishedLease(t *testing.T) {
	repo := NewLeaseRepo(emptyDB(t))
	_, err := repo.Transition(context.Background(), 7, 1, false, "afk", nil)
	if err != ErrLeaseNotFound {
		t.Fatalf("Transition on vanished lease: err = %v, want ErrLeaseNotFound", err)
	}
}

func TestReleaseVanishedLease(t *testing.T) {
	repo := NewLeaseRepo(emptyDB(t))
	_, err := repo.Release(context.Background(), 7, 1, false)
	if err != ErrLeaseNotFound {
		t.Fatalf("Release on vanished lease: err = %v, want ErrLeaseNotFound", err)
	}
}

func TestLeaseSpan(t *testing.T) {
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	end, secs := leaseSpan(start, start.Add(90*time.Second))
	if secs != 90 {
		t.Errorf("duration = %d, want 90", secs)
	}
	if !end.Equal(start.Add(90 * time.Second)) {
		t.Errorf("end moved unexpectedly: %v", end)
	}

	// Sub-second remainders truncate toward zero.
	_, secs = leaseSpan(start, start.Add(90*time.Second+700*time.Millisecond))
	if secs != 90 {
		t.Errorf("fractional duration = %d, want 90", secs)
	}

	// A clock running behind must never yield a negative duration.
	end, secs = leaseSpan(start, start.Add(-5*time.Second))
	if secs != 0 {
		t.Errorf("skewed duration = %d, want 0", secs)
	}
	if !end.Equal(start) {
		t.Errorf("skewed end = %v, want clamped to start", end)
	}
}
