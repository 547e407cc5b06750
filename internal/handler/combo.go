package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/repository"
)

// ComboHandler serves tribe-scoped sale bundles. A combo is created
// with its item lines and price options in one shot; the repository
// writes all three atomically.
type ComboHandler struct {
	Combos *repository.ComboRepo
}

func NewComboHandler(r *repository.ComboRepo) *ComboHandler {
	return &ComboHandler{Combos: r}
}

type comboDetailReq struct {
	ItemID   uint64 `json:"item_id"`
	Quantity uint32 `json:"quantity"`
}
type comboPriceReq struct {
	Type     string   `json:"type"`
	ItemID   *uint64  `json:"item_id"`
	Quantity *uint32  `json:"quantity"`
	Amount   *float64 `json:"amount"`
}
type comboReq struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	IsAvailable bool             `json:"is_available"`
	IsForSale   bool             `json:"is_for_sale"`
	Details     []comboDetailReq `json:"details"`
	Prices      []comboPriceReq  `json:"prices"`
}
type comboAvailabilityReq struct {
	IsAvailable bool `json:"is_available"`
	IsForSale   bool `json:"is_for_sale"`
}

type comboResp struct {
	model.Combo
	Details []model.ComboDetail `json:"details"`
	Prices  []model.Price       `json:"prices"`
}

func (h *ComboHandler) Create(c echo.Context) error {
	tribeID, ok := tribeOf(c)
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "caller has no tribe"})
	}
	var req comboReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if len(req.Details) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one detail line required"})
	}

	details := make([]model.ComboDetail, 0, len(req.Details))
	for _, d := range req.Details {
		if d.ItemID == 0 || d.Quantity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "detail lines need item_id and quantity"})
		}
		details = append(details, model.ComboDetail{ItemID: d.ItemID, Quantity: d.Quantity})
	}
	prices := make([]model.Price, 0, len(req.Prices))
	for _, p := range req.Prices {
		switch p.Type {
		case model.PriceTypeCoins:
			if p.Amount == nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Coins price needs amount"})
			}
		case model.PriceTypeItem:
			if p.ItemID == nil || p.Quantity == nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Item price needs item_id and quantity"})
			}
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price type must be Coins or Item"})
		}
		prices = append(prices, model.Price{Type: p.Type, ItemID: p.ItemID, Quantity: p.Quantity, Amount: p.Amount})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	combo := model.Combo{
		Name:        req.Name,
		Description: req.Description,
		TribeID:     tribeID,
		IsAvailable: req.IsAvailable,
		IsForSale:   req.IsForSale,
	}
	if err := h.Combos.Create(ctx, &combo, details, prices); err != nil {
		switch err {
		case repository.ErrItemNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		case repository.ErrTribeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tribe not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create combo failed"})
	}
	return c.JSON(http.StatusCreated, comboResp{Combo: combo, Details: details, Prices: prices})
}

// List returns the caller's tribe's combos.
func (h *ComboHandler) List(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if cl.TribeID == nil {
		return c.JSON(http.StatusOK, echo.Map{"combos": []model.Combo{}})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	combos, err := h.Combos.ListByTribe(ctx, *cl.TribeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"combos": combos})
}

// Get returns one combo with its detail and price lines.
func (h *ComboHandler) Get(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid combo id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	combo, err := h.Combos.GetByID(ctx, id)
	if err == repository.ErrComboNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "combo not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !cl.IsSuperuser && (cl.TribeID == nil || *cl.TribeID != combo.TribeID) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "combo not found"})
	}

	details, err := h.Combos.Details(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	prices, err := h.Combos.Prices(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, comboResp{Combo: combo, Details: details, Prices: prices})
}

// SetAvailability flips the availability and for-sale flags.
func (h *ComboHandler) SetAvailability(c echo.Context) error {
	combo, done := h.loadOwned(c)
	if done {
		return nil
	}
	var req comboAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Combos.SetAvailability(ctx, combo.ID, req.IsAvailable, req.IsForSale); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update combo failed"})
	}
	combo.IsAvailable, combo.IsForSale = req.IsAvailable, req.IsForSale
	return c.JSON(http.StatusOK, combo)
}

func (h *ComboHandler) Delete(c echo.Context) error {
	combo, done := h.loadOwned(c)
	if done {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Combos.Delete(ctx, combo.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete combo failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "combo deleted"})
}

// loadOwned fetches the combo at :id and enforces tribe ownership. When
// done is true a response has already been written.
func (h *ComboHandler) loadOwned(c echo.Context) (model.Combo, bool) {
	cl, ok := claims(c)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return model.Combo{}, true
	}
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid combo id"})
		return model.Combo{}, true
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	combo, err := h.Combos.GetByID(ctx, id)
	if err == repository.ErrComboNotFound {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "combo not found"})
		return model.Combo{}, true
	}
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		return model.Combo{}, true
	}
	if !cl.IsSuperuser && (cl.TribeID == nil || *cl.TribeID != combo.TribeID) {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "combo not found"})
		return model.Combo{}, true
	}
	return combo, false
}
