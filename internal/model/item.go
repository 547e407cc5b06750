package model

// Item is a game item (ingredient or product) tracked by the store.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique item name.
//  Description – optional free-text description.
//  Stack       – maximum stack size in the game inventory.
type Item struct {
	ID          uint64  // items.id
	Name        string  // items.name
	Description *string // items.description (nullable)
	Stack       uint32  // items.stack
}
