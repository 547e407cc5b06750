package model

// Tribe represents a guild/clan grouping users and shared accounts.
// Every shared Account belongs to exactly one tribe, while a User may
// be tribe-less (TribeID is nullable on the users table).
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the tribe.
//  Description – free-text description.
type Tribe struct {
	ID          uint64 // tribes.id
	Name        string // tribes.name
	Description string // tribes.description
}
