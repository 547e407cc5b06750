package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/repository"
)

// TribeHandler serves tribe CRUD. Reading is open to any authenticated
// user; creation and mutation stay with superusers, who run the server.
type TribeHandler struct {
	Tribes *repository.TribeRepo
}

func NewTribeHandler(t *repository.TribeRepo) *TribeHandler {
	return &TribeHandler{Tribes: t}
}

type tribeReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *TribeHandler) Create(c echo.Context) error {
	cl, ok := claims(c)
	if !ok || !cl.IsSuperuser {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "superuser required"})
	}
	var req tribeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	t := model.Tribe{Name: req.Name, Description: req.Description}
	if err := h.Tribes.Create(ctx, &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create tribe failed"})
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TribeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tribe id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	t, err := h.Tribes.GetByID(ctx, id)
	if err == repository.ErrTribeNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tribe not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TribeHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	tribes, err := h.Tribes.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tribes": tribes})
}

func (h *TribeHandler) Update(c echo.Context) error {
	cl, ok := claims(c)
	if !ok || !cl.IsSuperuser {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "superuser required"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tribe id"})
	}
	var req tribeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	t := model.Tribe{ID: id, Name: req.Name, Description: req.Description}
	if err := h.Tribes.Update(ctx, t); err != nil {
		if err == repository.ErrTribeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tribe not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update tribe failed"})
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TribeHandler) Delete(c echo.Context) error {
	cl, ok := claims(c)
	if !ok || !cl.IsSuperuser {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "superuser required"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tribe id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Tribes.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrTribeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tribe not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "tribe still has accounts or members"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete tribe failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "tribe deleted"})
}
