package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/arktribe/tribestore/internal/model"
)

// LeaseLogRepo exposes the read-only query surface over lease history.
// Rows are written exclusively by LeaseRepo's release paths; nothing
// here mutates the table.
type LeaseLogRepo struct {
	db *sql.DB
}

// NewLeaseLogRepo returns a LeaseLogRepo bound to the provided database.
func NewLeaseLogRepo(db *sql.DB) *LeaseLogRepo { return &LeaseLogRepo{db: db} }

const leaseLogCols = "id, user_id, account_id, start_time, end_time, duration_secs"

// ListByUser returns completed leases for one user, newest first.
func (r *LeaseLogRepo) ListByUser(ctx context.Context, userID uint64) ([]model.LeaseLog, error) {
	return r.query(ctx,
		"SELECT "+leaseLogCols+" FROM lease_logs WHERE user_id=? ORDER BY end_time DESC", userID)
}

// ListByAccount returns completed leases for one account, newest first.
func (r *LeaseLogRepo) ListByAccount(ctx context.Context, accountID uint64) ([]model.LeaseLog, error) {
	return r.query(ctx,
		"SELECT "+leaseLogCols+" FROM lease_logs WHERE account_id=? ORDER BY end_time DESC", accountID)
}

// ListByRange returns completed leases whose end time falls in [from, to).
func (r *LeaseLogRepo) ListByRange(ctx context.Context, from, to time.Time) ([]model.LeaseLog, error) {
	return r.query(ctx,
		"SELECT "+leaseLogCols+" FROM lease_logs WHERE end_time >= ? AND end_time < ? ORDER BY end_time DESC",
		from.UTC(), to.UTC())
}

// PlaytimeTotal holds summed play time per user since some cutoff.
type PlaytimeTotal struct {
	UserID    uint64
	TotalSecs int64
}

// TotalsSince sums play time per user for leases ended at or after the
// cutoff. Used by the daily rollup job.
func (r *LeaseLogRepo) TotalsSince(ctx context.Context, since time.Time) ([]PlaytimeTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT user_id, COALESCE(SUM(duration_secs),0) FROM lease_logs WHERE end_time >= ? GROUP BY user_id",
		since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]PlaytimeTotal, 0)
	for rows.Next() {
		var t PlaytimeTotal
		if err := rows.Scan(&t.UserID, &t.TotalSecs); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *LeaseLogRepo) query(ctx context.Context, q string, args ...interface{}) ([]model.LeaseLog, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]model.LeaseLog, 0)
	for rows.Next() {
		var l model.LeaseLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.AccountID, &l.StartTime, &l.EndTime, &l.DurationSecs); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
