package model

import "time"

// Lease statuses stored in leases.status. The transition graph is
// deliberately unrestricted: any status may follow any other.
const (
	StatusPlaying    = "playing"
	StatusGachaTower = "gacha_tower"
	StatusAFK        = "afk"
)

// ValidStatus reports whether s is one of the recognised lease statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPlaying, StatusGachaTower, StatusAFK:
		return true
	}
	return false
}

// Lease is the live occupancy record binding one user to one shared
// account.  The leases table carries unique indexes on both account_id
// and user_id, so at most one lease per account and one lease per user
// can exist at any moment; those indexes, not application checks, are
// what makes concurrent acquires safe.  A lease exists only while
// occupancy is active and is deleted (never soft-closed) on release.
//
// Fields:
//  ID        – primary key identifier.
//  AccountID – occupied account (unique across live leases).
//  UserID    – occupant (unique across live leases).
//  StartTime – when occupancy began (UTC).
//  Status    – playing | gacha_tower | afk.
//  AFKText   – optional free-text annotation for the afk status.
type Lease struct {
	ID        uint64    // leases.id
	AccountID uint64    // leases.account_id
	UserID    uint64    // leases.user_id
	StartTime time.Time // leases.start_time
	Status    string    // leases.status
	AFKText   *string   // leases.afk_text (nullable)
}

// LeaseLog is the immutable historical record written exactly once per
// completed lease, inside the same transaction that deletes the lease.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – occupant of the completed lease.
//  AccountID    – account that was occupied.
//  StartTime    – when occupancy began.
//  EndTime      – when occupancy ended.
//  DurationSecs – EndTime − StartTime in whole seconds.
type LeaseLog struct {
	ID           uint64    // lease_logs.id
	UserID       uint64    // lease_logs.user_id
	AccountID    uint64    // lease_logs.account_id
	StartTime    time.Time // lease_logs.start_time
	EndTime      time.Time // lease_logs.end_time
	DurationSecs int64     // lease_logs.duration_secs
}
