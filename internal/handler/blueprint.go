package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/repository"
)

// BlueprintHandler serves the global craftable blueprints.
type BlueprintHandler struct {
	Blueprints *repository.BlueprintRepo
}

func NewBlueprintHandler(b *repository.BlueprintRepo) *BlueprintHandler {
	return &BlueprintHandler{Blueprints: b}
}

type materialReq struct {
	ItemID   uint64 `json:"item_id"`
	Quantity uint32 `json:"quantity"`
}
type blueprintReq struct {
	OutputItemID   uint64        `json:"output_item_id"`
	Description    *string       `json:"description"`
	OutputQuantity uint32        `json:"output_quantity"`
	Materials      []materialReq `json:"materials"`
}

type blueprintResp struct {
	model.Blueprint
	Materials []model.BlueprintMaterial `json:"materials"`
}

func (h *BlueprintHandler) Create(c echo.Context) error {
	var req blueprintReq
	if err := c.Bind(&req); err != nil || req.OutputItemID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "output_item_id required"})
	}
	if len(req.Materials) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one material required"})
	}
	materials := make([]model.BlueprintMaterial, 0, len(req.Materials))
	for _, m := range req.Materials {
		if m.ItemID == 0 || m.Quantity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "materials need item_id and quantity"})
		}
		materials = append(materials, model.BlueprintMaterial{ItemID: m.ItemID, Quantity: m.Quantity})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b := model.Blueprint{
		OutputItemID:   req.OutputItemID,
		Description:    req.Description,
		OutputQuantity: req.OutputQuantity,
	}
	if err := h.Blueprints.Create(ctx, &b, materials); err != nil {
		if err == repository.ErrItemNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create blueprint failed"})
	}
	return c.JSON(http.StatusCreated, blueprintResp{Blueprint: b, Materials: materials})
}

func (h *BlueprintHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid blueprint id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Blueprints.GetByID(ctx, id)
	if err == repository.ErrBlueprintNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "blueprint not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	materials, err := h.Blueprints.Materials(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, blueprintResp{Blueprint: b, Materials: materials})
}

func (h *BlueprintHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	bps, err := h.Blueprints.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"blueprints": bps})
}

func (h *BlueprintHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid blueprint id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Blueprints.Delete(ctx, id); err != nil {
		if err == repository.ErrBlueprintNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "blueprint not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete blueprint failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "blueprint deleted"})
}
