package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/repository"
)

// DinoHandler serves the creature species catalog.
type DinoHandler struct {
	Dinos *repository.DinoRepo
}

func NewDinoHandler(d *repository.DinoRepo) *DinoHandler {
	return &DinoHandler{Dinos: d}
}

type dinoReq struct {
	FullName string `json:"fullname"`
	Name     string `json:"name"`
	Category string `json:"category"`
	EggType  string `json:"egg_type"`
}

func (r *dinoReq) validate() string {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Name = strings.TrimSpace(r.Name)
	if r.FullName == "" || r.Name == "" {
		return "fullname and name required"
	}
	if !model.ValidDinoCategory(r.Category) {
		return "category must be PvP, Soaker, Flyer, Water or Any"
	}
	if !model.ValidEggType(r.EggType) {
		return "egg_type must be Egg, Embryo or Clone"
	}
	return ""
}

func (h *DinoHandler) Create(c echo.Context) error {
	var req dinoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d := model.Dino{FullName: req.FullName, Name: req.Name, Category: req.Category, EggType: req.EggType}
	if err := h.Dinos.Create(ctx, &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create dino failed"})
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *DinoHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid dino id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	d, err := h.Dinos.GetByID(ctx, id)
	if err == repository.ErrDinoNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "dino not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, d)
}

// List returns all species, optionally filtered by ?category=.
func (h *DinoHandler) List(c echo.Context) error {
	category := c.QueryParam("category")
	if category != "" && !model.ValidDinoCategory(category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	dinos, err := h.Dinos.List(ctx, category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"dinos": dinos})
}

func (h *DinoHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid dino id"})
	}
	var req dinoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d := model.Dino{ID: id, FullName: req.FullName, Name: req.Name, Category: req.Category, EggType: req.EggType}
	if err := h.Dinos.Update(ctx, d); err != nil {
		if err == repository.ErrDinoNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "dino not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update dino failed"})
	}
	return c.JSON(http.StatusOK, d)
}

func (h *DinoHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid dino id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Dinos.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrDinoNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "dino not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "dino is referenced by genetics"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete dino failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "dino deleted"})
}
