// Package queue defines message payloads exchanged over the message broker.
package queue

// LeaseReleasedEvent is published after a lease release commits. It
// carries enough information for downstream consumers to build playtime
// reports or notifications without querying the primary database.
type LeaseReleasedEvent struct {
	EventID      string `json:"event_id"` // uuid, for consumer-side dedup
	LeaseLogID   uint64 `json:"lease_log_id"`
	UserID       uint64 `json:"user_id"`
	Username     string `json:"username"`
	AccountID    uint64 `json:"account_id"`
	AccountName  string `json:"account_name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	DurationSecs int64  `json:"duration_secs"`
}
