package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/arktribe/tribestore/internal/model"
)

// LeaseRepo provides data access to the leases table and owns the
// occupancy invariants. Acquire is a single constrained INSERT: the
// uq_leases_account and uq_leases_user unique indexes guarantee that
// concurrent acquires on the same account (or by the same user) yield
// exactly one success, so there is no read-then-write window to race
// through. Release deletes the lease and appends the history row in one
// transaction; a crash can never leave a released lease without its log
// or a logged lease still live.
type LeaseRepo struct {
	db *sql.DB
}

// NewLeaseRepo returns a LeaseRepo bound to the provided database.
func NewLeaseRepo(db *sql.DB) *LeaseRepo { return &LeaseRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning this and other repositories (account deletion).
func (r *LeaseRepo) DB() *sql.DB { return r.db }

// LeaseView is a lease joined with occupant and account names for
// occupancy dashboards.
type LeaseView struct {
	model.Lease
	Username    string // users.username of the occupant
	AccountName string // accounts.name
	ShortCode   string // accounts.short_code
}

// Acquire creates a lease for userID on accountID with status playing.
// It returns ErrAccountAlreadyLeased or ErrUserAlreadyLeasing when one
// of the unique indexes rejects the row, and ErrAccountNotFound when
// the account reference does not resolve. The insert either fully
// succeeds or leaves no trace, so a retry after a transient failure is
// always safe.
func (r *LeaseRepo) Acquire(ctx context.Context, userID, accountID uint64) (model.Lease, error) {
	start := time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO leases (account_id, user_id, start_time, status) VALUES (?,?,?,?)",
		accountID, userID, start, model.StatusPlaying)
	if err != nil {
		switch {
		case isDuplicateOf(err, "uq_leases_account"):
			return model.Lease{}, ErrAccountAlreadyLeased
		case isDuplicateOf(err, "uq_leases_user"):
			return model.Lease{}, ErrUserAlreadyLeasing
		case isForeignKeyViolation(err):
			// user_id comes from a validated token, so the failing
			// reference is the account.
			return model.Lease{}, ErrAccountNotFound
		}
		return model.Lease{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Lease{}, err
	}
	return model.Lease{
		ID:        uint64(id),
		AccountID: accountID,
		UserID:    userID,
		StartTime: start,
		Status:    model.StatusPlaying,
	}, nil
}

// GetByID fetches a lease by id. Returns ErrLeaseNotFound when absent.
func (r *LeaseRepo) GetByID(ctx context.Context, id uint64) (model.Lease, error) {
	var l model.Lease
	err := r.db.QueryRowContext(ctx,
		"SELECT id, account_id, user_id, start_time, status, afk_text FROM leases WHERE id=? LIMIT 1",
		id).Scan(&l.ID, &l.AccountID, &l.UserID, &l.StartTime, &l.Status, &l.AFKText)
	if err == sql.ErrNoRows {
		return model.Lease{}, ErrLeaseNotFound
	}
	return l, err
}

// GetByUser fetches the caller's own active lease, if any.
func (r *LeaseRepo) GetByUser(ctx context.Context, userID uint64) (model.Lease, error) {
	var l model.Lease
	err := r.db.QueryRowContext(ctx,
		"SELECT id, account_id, user_id, start_time, status, afk_text FROM leases WHERE user_id=? LIMIT 1",
		userID).Scan(&l.ID, &l.AccountID, &l.UserID, &l.StartTime, &l.Status, &l.AFKText)
	if err == sql.ErrNoRows {
		return model.Lease{}, ErrLeaseNotFound
	}
	return l, err
}

// Transition updates the status and AFK annotation of a lease. The
// caller must be the occupant unless elevated is true; a violation
// returns ErrForbidden. Statuses are validated by the handler, the
// transition graph itself is unrestricted. The row is locked for the
// duration of the transaction, so a lease released concurrently reports
// ErrLeaseNotFound instead of updating nothing and claiming success.
func (r *LeaseRepo) Transition(ctx context.Context, leaseID, callerID uint64, elevated bool, status string, afkText *string) (model.Lease, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Lease{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var l model.Lease
	err = tx.QueryRowContext(ctx,
		"SELECT id, account_id, user_id, start_time, status, afk_text FROM leases WHERE id=? FOR UPDATE",
		leaseID).Scan(&l.ID, &l.AccountID, &l.UserID, &l.StartTime, &l.Status, &l.AFKText)
	if err == sql.ErrNoRows {
		return model.Lease{}, ErrLeaseNotFound
	}
	if err != nil {
		return model.Lease{}, err
	}
	if !elevated && l.UserID != callerID {
		return model.Lease{}, ErrForbidden
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE leases SET status=?, afk_text=? WHERE id=?",
		status, afkText, leaseID); err != nil {
		return model.Lease{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Lease{}, err
	}
	committed = true
	l.Status = status
	l.AFKText = afkText
	return l, nil
}

// Release terminates a lease: within one transaction it locks the row,
// verifies ownership, appends the lease_logs entry and deletes the
// lease. Returns the written log. A second release of the same id finds
// no row and reports ErrLeaseNotFound.
func (r *LeaseRepo) Release(ctx context.Context, leaseID, callerID uint64, elevated bool) (model.LeaseLog, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.LeaseLog{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var l model.Lease
	err = tx.QueryRowContext(ctx,
		"SELECT id, account_id, user_id, start_time FROM leases WHERE id=? FOR UPDATE",
		leaseID).Scan(&l.ID, &l.AccountID, &l.UserID, &l.StartTime)
	if err == sql.ErrNoRows {
		return model.LeaseLog{}, ErrLeaseNotFound
	}
	if err != nil {
		return model.LeaseLog{}, err
	}
	if !elevated && l.UserID != callerID {
		return model.LeaseLog{}, ErrForbidden
	}

	log, err := closeLeaseTx(ctx, tx, l)
	if err != nil {
		return model.LeaseLog{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.LeaseLog{}, err
	}
	committed = true
	return log, nil
}

// ReleaseByAccountTx releases whatever lease is active on accountID
// inside the caller's transaction. Used by account deletion so the
// history row lands in the same transaction that removes the account.
// Returns ErrLeaseNotFound when the account is unoccupied.
func (r *LeaseRepo) ReleaseByAccountTx(ctx context.Context, tx *sql.Tx, accountID uint64) (model.LeaseLog, error) {
	var l model.Lease
	err := tx.QueryRowContext(ctx,
		"SELECT id, account_id, user_id, start_time FROM leases WHERE account_id=? FOR UPDATE",
		accountID).Scan(&l.ID, &l.AccountID, &l.UserID, &l.StartTime)
	if err == sql.ErrNoRows {
		return model.LeaseLog{}, ErrLeaseNotFound
	}
	if err != nil {
		return model.LeaseLog{}, err
	}
	return closeLeaseTx(ctx, tx, l)
}

// leaseSpan clamps end to never precede start and returns the adjusted
// end plus the duration in whole seconds. Clock skew between app
// instances must not produce a negative duration.
func leaseSpan(start, end time.Time) (time.Time, int64) {
	if end.Before(start) {
		end = start
	}
	return end, int64(end.Sub(start) / time.Second)
}

// closeLeaseTx appends the lease_logs row and deletes the lease within
// tx. Both writes commit or roll back as a unit with the caller.
func closeLeaseTx(ctx context.Context, tx *sql.Tx, l model.Lease) (model.LeaseLog, error) {
	end, secs := leaseSpan(l.StartTime, time.Now().UTC().Truncate(time.Second))
	log := model.LeaseLog{
		UserID:       l.UserID,
		AccountID:    l.AccountID,
		StartTime:    l.StartTime,
		EndTime:      end,
		DurationSecs: secs,
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO lease_logs (user_id, account_id, start_time, end_time, duration_secs) VALUES (?,?,?,?,?)",
		log.UserID, log.AccountID, log.StartTime, log.EndTime, log.DurationSecs)
	if err != nil {
		return model.LeaseLog{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.LeaseLog{}, err
	}
	log.ID = uint64(id)
	if _, err := tx.ExecContext(ctx, "DELETE FROM leases WHERE id=?", l.ID); err != nil {
		return model.LeaseLog{}, err
	}
	return log, nil
}

// List returns a snapshot of all active leases joined with occupant and
// account names, ordered by start time.
func (r *LeaseRepo) List(ctx context.Context) ([]LeaseView, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT l.id, l.account_id, l.user_id, l.start_time, l.status, l.afk_text,
		        u.username, a.name, a.short_code
		 FROM leases l
		 JOIN users u ON u.id = l.user_id
		 JOIN accounts a ON a.id = l.account_id
		 ORDER BY l.start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]LeaseView, 0)
	for rows.Next() {
		var v LeaseView
		if err := rows.Scan(&v.ID, &v.AccountID, &v.UserID, &v.StartTime, &v.Status, &v.AFKText,
			&v.Username, &v.AccountName, &v.ShortCode); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
