package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/repository"
)

// RecipeHandler serves the global crafting recipes.
type RecipeHandler struct {
	Recipes *repository.RecipeRepo
}

func NewRecipeHandler(r *repository.RecipeRepo) *RecipeHandler {
	return &RecipeHandler{Recipes: r}
}

type ingredientReq struct {
	ItemID   uint64 `json:"item_id"`
	Quantity uint32 `json:"quantity"`
}
type recipeReq struct {
	Name           string          `json:"name"` // optional, defaults to output item name
	Description    *string         `json:"description"`
	OutputItemID   uint64          `json:"output_item_id"`
	OutputQuantity uint32          `json:"output_quantity"`
	Ingredients    []ingredientReq `json:"ingredients"`
}

type recipeResp struct {
	model.Recipe
	Ingredients []model.RecipeIngredient `json:"ingredients"`
}

func (h *RecipeHandler) Create(c echo.Context) error {
	var req recipeReq
	if err := c.Bind(&req); err != nil || req.OutputItemID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "output_item_id required"})
	}
	if len(req.Ingredients) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one ingredient required"})
	}
	ingredients := make([]model.RecipeIngredient, 0, len(req.Ingredients))
	for _, in := range req.Ingredients {
		if in.ItemID == 0 || in.Quantity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "ingredients need item_id and quantity"})
		}
		ingredients = append(ingredients, model.RecipeIngredient{ItemID: in.ItemID, Quantity: in.Quantity})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rec := model.Recipe{
		Name:           req.Name,
		Description:    req.Description,
		OutputItemID:   req.OutputItemID,
		OutputQuantity: req.OutputQuantity,
	}
	if err := h.Recipes.Create(ctx, &rec, ingredients); err != nil {
		if err == repository.ErrItemNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create recipe failed"})
	}
	return c.JSON(http.StatusCreated, recipeResp{Recipe: rec, Ingredients: ingredients})
}

func (h *RecipeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rec, err := h.Recipes.GetByID(ctx, id)
	if err == repository.ErrRecipeNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	ingredients, err := h.Recipes.Ingredients(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, recipeResp{Recipe: rec, Ingredients: ingredients})
}

func (h *RecipeHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	recipes, err := h.Recipes.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"recipes": recipes})
}

func (h *RecipeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Recipes.Delete(ctx, id); err != nil {
		if err == repository.ErrRecipeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete recipe failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "recipe deleted"})
}
