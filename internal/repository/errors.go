// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// each one to a distinct HTTP status. The lease sentinels in
// particular carry the concurrency contract: Acquire never does a
// check-then-insert, it attempts a single constrained INSERT and
// classifies the duplicate-key failure by the unique index that fired.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// Lease failure taxonomy. The two conflict values map 1:1 to the
// uq_leases_account and uq_leases_user unique indexes.
var (
	ErrAccountAlreadyLeased = errors.New("account already leased")
	ErrUserAlreadyLeasing   = errors.New("user already leasing another account")
	ErrLeaseNotFound        = errors.New("lease not found")
	ErrAccountNotFound      = errors.New("account not found")
)

// isDuplicate reports whether err is a MySQL duplicate-key error (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isDuplicateOf reports whether err is a MySQL duplicate-key error raised
// by the named unique index. MySQL includes the index name in the 1062
// message ("Duplicate entry '7' for key 'leases.uq_leases_account'"),
// which lets Acquire tell the two mutual-exclusion violations apart
// without any extra round trip.
func isDuplicateOf(err error, index string) bool {
	if !isDuplicate(err) {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), strings.ToLower(index))
}

// isForeignKeyViolation reports whether err is a MySQL referential
// integrity failure on insert/update (1452, child row references a
// missing parent).
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}

// isRestrictedDelete reports whether err is a MySQL restricted parent
// delete (1451, child rows still reference the row being removed).
func isRestrictedDelete(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1451")
}
