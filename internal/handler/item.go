package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/repository"
)

// ItemHandler serves the global item catalog. Reads are open to any
// authenticated user; the router restricts mutation to admins.
type ItemHandler struct {
	Items *repository.ItemRepo
}

func NewItemHandler(i *repository.ItemRepo) *ItemHandler {
	return &ItemHandler{Items: i}
}

type itemReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Stack       uint32  `json:"stack"`
}

func (h *ItemHandler) Create(c echo.Context) error {
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Stack == 0 {
		req.Stack = 1
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	it := model.Item{Name: req.Name, Description: req.Description, Stack: req.Stack}
	if err := h.Items.Create(ctx, &it); err != nil {
		if err == repository.ErrItemNameTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "item name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create item failed"})
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *ItemHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	it, err := h.Items.GetByID(ctx, id)
	if err == repository.ErrItemNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, it)
}

func (h *ItemHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Items.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *ItemHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Stack == 0 {
		req.Stack = 1
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	it := model.Item{ID: id, Name: req.Name, Description: req.Description, Stack: req.Stack}
	if err := h.Items.Update(ctx, it); err != nil {
		switch err {
		case repository.ErrItemNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		case repository.ErrItemNameTaken:
			return c.JSON(http.StatusConflict, echo.Map{"error": "item name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update item failed"})
	}
	return c.JSON(http.StatusOK, it)
}

func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Items.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrItemNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "item is referenced by recipes or blueprints"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete item failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "item deleted"})
}
