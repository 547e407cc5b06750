package model

// Blueprint is a craftable schematic producing an output item.
type Blueprint struct {
	ID             uint64  // blueprints.id
	OutputItemID   uint64  // blueprints.output_item_id
	Description    *string // blueprints.description (nullable)
	OutputQuantity uint32  // blueprints.output_quantity
}

// BlueprintMaterial is a material requirement of a blueprint.
type BlueprintMaterial struct {
	ID          uint64 // blueprint_materials.id
	BlueprintID uint64 // blueprint_materials.blueprint_id
	ItemID      uint64 // blueprint_materials.item_id
	Quantity    uint32 // blueprint_materials.quantity
}
