package model

// Genetic records the bred stats of a creature line owned by a tribe.
// Each stat carries a base level and a mutation count.
type Genetic struct {
	ID            uint64 // genetics.id
	DinoID        uint64 // genetics.dino_id
	TribeID       uint64 // genetics.tribe_id
	HealthBase    int32  // genetics.health_base
	HealthMutates int32  // genetics.health_mutates
	StaminaBase   int32  // genetics.stamina_base
	StaminaMutate int32  // genetics.stamina_mutates
	OxygenBase    int32  // genetics.oxygen_base
	OxygenMutates int32  // genetics.oxygen_mutates
	FoodBase      int32  // genetics.food_base
	FoodMutates   int32  // genetics.food_mutates
	WeightBase    int32  // genetics.weight_base
	WeightMutates int32  // genetics.weight_mutates
	DamageBase    int32  // genetics.damage_base
	DamageMutates int32  // genetics.damage_mutates
}

// Payment methods accepted on a sale post.
const (
	PaymentUSD  = "USD"
	PaymentEUR  = "EUR"
	PaymentItem = "Item"
)

// SalePost advertises a genetic line for sale.  Payment is either a
// currency amount or an in-game item, in which case ItemPaymentID is set.
type SalePost struct {
	ID             uint64   // sale_posts.id
	TribeID        uint64   // sale_posts.tribe_id
	GeneticID      uint64   // sale_posts.genetic_id
	Title          string   // sale_posts.title
	Description    *string  // sale_posts.description (nullable)
	DiscordContact *string  // sale_posts.discord_contact (nullable)
	IsForSale      bool     // sale_posts.is_for_sale
	PaymentMethod  string   // sale_posts.payment_method
	ItemPaymentID  *uint64  // sale_posts.item_payment_id (nullable)
	PriceAmount    *float64 // sale_posts.price_amount (nullable)
}
