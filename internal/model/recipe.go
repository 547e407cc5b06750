package model

// Recipe describes how an output item is crafted.  When Name is empty
// on creation it defaults to the output item's name.
type Recipe struct {
	ID             uint64  // recipes.id
	Name           string  // recipes.name
	Description    *string // recipes.description (nullable)
	OutputItemID   uint64  // recipes.output_item_id
	OutputQuantity uint32  // recipes.output_quantity
}

// RecipeIngredient links a required item and quantity to a recipe.
type RecipeIngredient struct {
	ID       uint64 // recipe_ingredients.id
	RecipeID uint64 // recipe_ingredients.recipe_id
	ItemID   uint64 // recipe_ingredients.item_id
	Quantity uint32 // recipe_ingredients.quantity
}
