package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/repository"
)

// GeneticHandler serves tribe-scoped genetic lines and the public sale
// posts advertising them.
type GeneticHandler struct {
	Genetics *repository.GeneticRepo
}

func NewGeneticHandler(g *repository.GeneticRepo) *GeneticHandler {
	return &GeneticHandler{Genetics: g}
}

type geneticReq struct {
	DinoID        uint64 `json:"dino_id"`
	HealthBase    int32  `json:"health_base"`
	HealthMutates int32  `json:"health_mutates"`
	StaminaBase   int32  `json:"stamina_base"`
	StaminaMutate int32  `json:"stamina_mutates"`
	OxygenBase    int32  `json:"oxygen_base"`
	OxygenMutates int32  `json:"oxygen_mutates"`
	FoodBase      int32  `json:"food_base"`
	FoodMutates   int32  `json:"food_mutates"`
	WeightBase    int32  `json:"weight_base"`
	WeightMutates int32  `json:"weight_mutates"`
	DamageBase    int32  `json:"damage_base"`
	DamageMutates int32  `json:"damage_mutates"`
}

type salePostReq struct {
	GeneticID      uint64   `json:"genetic_id"`
	Title          string   `json:"title"`
	Description    *string  `json:"description"`
	DiscordContact *string  `json:"discord_contact"`
	PaymentMethod  string   `json:"payment_method"`
	ItemPaymentID  *uint64  `json:"item_payment_id"`
	PriceAmount    *float64 `json:"price_amount"`
}

// tribeOf resolves the tribe a mutation applies to; callers without a
// tribe cannot own genetics.
func tribeOf(c echo.Context) (uint64, bool) {
	cl, ok := claims(c)
	if !ok || cl.TribeID == nil {
		return 0, false
	}
	return *cl.TribeID, true
}

func (h *GeneticHandler) Create(c echo.Context) error {
	tribeID, ok := tribeOf(c)
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "caller has no tribe"})
	}
	var req geneticReq
	if err := c.Bind(&req); err != nil || req.DinoID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dino_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	g := model.Genetic{
		DinoID: req.DinoID, TribeID: tribeID,
		HealthBase: req.HealthBase, HealthMutates: req.HealthMutates,
		StaminaBase: req.StaminaBase, StaminaMutate: req.StaminaMutate,
		OxygenBase: req.OxygenBase, OxygenMutates: req.OxygenMutates,
		FoodBase: req.FoodBase, FoodMutates: req.FoodMutates,
		WeightBase: req.WeightBase, WeightMutates: req.WeightMutates,
		DamageBase: req.DamageBase, DamageMutates: req.DamageMutates,
	}
	if err := h.Genetics.Create(ctx, &g); err != nil {
		if err == repository.ErrDinoNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "dino not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create genetic failed"})
	}
	return c.JSON(http.StatusCreated, g)
}

// List returns the caller's tribe's genetic lines. Superusers may pass
// ?tribe_id= to inspect any tribe.
func (h *GeneticHandler) List(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tribeID := uint64(0)
	switch {
	case cl.IsSuperuser && c.QueryParam("tribe_id") != "":
		id, err := pathOrQueryID(c.QueryParam("tribe_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tribe_id"})
		}
		tribeID = id
	case cl.TribeID != nil:
		tribeID = *cl.TribeID
	default:
		return c.JSON(http.StatusOK, echo.Map{"genetics": []model.Genetic{}})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	gens, err := h.Genetics.ListByTribe(ctx, tribeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"genetics": gens})
}

func (h *GeneticHandler) Get(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genetic id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	g, err := h.Genetics.GetByID(ctx, id)
	if err == repository.ErrGeneticNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "genetic not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !cl.IsSuperuser && (cl.TribeID == nil || *cl.TribeID != g.TribeID) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "genetic not found"})
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GeneticHandler) Delete(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genetic id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	g, err := h.Genetics.GetByID(ctx, id)
	if err == repository.ErrGeneticNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "genetic not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !cl.IsSuperuser && (cl.TribeID == nil || *cl.TribeID != g.TribeID) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "genetic not found"})
	}
	if err := h.Genetics.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete genetic failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "genetic deleted"})
}

// ----- sale posts -----

// CreateSalePost advertises one of the tribe's genetic lines for sale.
// Item payment requires item_payment_id; currency payment price_amount.
func (h *GeneticHandler) CreateSalePost(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tribeID, ok := tribeOf(c)
	if !ok && !cl.IsSuperuser {
		return c.JSON(http.StatusConflict, echo.Map{"error": "caller has no tribe"})
	}
	var req salePostReq
	if err := c.Bind(&req); err != nil || req.GeneticID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "genetic_id required"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	switch req.PaymentMethod {
	case model.PaymentUSD, model.PaymentEUR:
		if req.PriceAmount == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_amount required"})
		}
	case model.PaymentItem:
		if req.ItemPaymentID == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_payment_id required"})
		}
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method must be USD, EUR or Item"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	g, err := h.Genetics.GetByID(ctx, req.GeneticID)
	if err == repository.ErrGeneticNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "genetic not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !cl.IsSuperuser && g.TribeID != tribeID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "genetic not found"})
	}

	p := model.SalePost{
		TribeID:        g.TribeID,
		GeneticID:      g.ID,
		Title:          req.Title,
		Description:    req.Description,
		DiscordContact: req.DiscordContact,
		IsForSale:      true,
		PaymentMethod:  req.PaymentMethod,
		ItemPaymentID:  req.ItemPaymentID,
		PriceAmount:    req.PriceAmount,
	}
	if err := h.Genetics.CreateSalePost(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create sale post failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// ListSalePosts returns every active sale post; the market is visible
// across tribes.
func (h *GeneticHandler) ListSalePosts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	posts, err := h.Genetics.ListSalePosts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"sale_posts": posts})
}

func (h *GeneticHandler) DeleteSalePost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sale post id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Genetics.DeleteSalePost(ctx, id); err != nil {
		if err == repository.ErrSalePostNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sale post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete sale post failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "sale post deleted"})
}
