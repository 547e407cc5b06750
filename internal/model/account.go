package model

import "time"

// Account is a shared external-game login owned by a tribe.  At most one
// user occupies an account at a time; occupancy is tracked by Lease.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique account name.
//  ShortCode – unique short code shown on dashboards.
//  TribeID   – owning tribe.
//  CreatedAt – timestamp of creation.
type Account struct {
	ID        uint64    // accounts.id
	Name      string    // accounts.name
	ShortCode string    // accounts.short_code
	TribeID   uint64    // accounts.tribe_id
	CreatedAt time.Time // accounts.created_at
}
