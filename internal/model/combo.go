package model

// Combo is a bundled sale offering composed of priced items.
type Combo struct {
	ID          uint64 // combos.id
	Name        string // combos.name
	Description string // combos.description
	TribeID     uint64 // combos.tribe_id
	IsAvailable bool   // combos.is_available
	IsForSale   bool   // combos.is_for_sale
}

// ComboDetail is one item line inside a combo.
type ComboDetail struct {
	ID       uint64 // combo_details.id
	ComboID  uint64 // combo_details.combo_id
	ItemID   uint64 // combo_details.item_id
	Quantity uint32 // combo_details.quantity
}

// Price types accepted on a combo price line.
const (
	PriceTypeCoins = "Coins"
	PriceTypeItem  = "Item"
)

// Price is one accepted payment option for a combo: either a coin
// amount or a quantity of a specific item.
type Price struct {
	ID       uint64   // prices.id
	ComboID  uint64   // prices.combo_id
	Type     string   // prices.type
	ItemID   *uint64  // prices.item_id (nullable, set for Item prices)
	Quantity *uint32  // prices.quantity (nullable)
	Amount   *float64 // prices.amount (nullable, set for Coins prices)
}
