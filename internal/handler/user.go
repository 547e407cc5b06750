package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/policy"
	"github.com/arktribe/tribestore/internal/repository"
)

// UserHandler serves the user directory. What a caller sees is decided
// by the policy package: superusers see everyone, admins their own
// tribe, regular users themselves.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler {
	return &UserHandler{Users: u}
}

type userUpdateReq struct {
	Role     string  `json:"role"`
	TribeID  *uint64 `json:"tribe_id"`
	IsActive *bool   `json:"is_active"`
}

type userResp struct {
	ID          uint64    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	TribeID     *uint64   `json:"tribe_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserResp(u model.User) userResp {
	return userResp{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		TribeID:     u.TribeID,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
}

// List returns the users visible to the caller. A tribe-less admin sees
// only themselves, same as a regular user.
func (h *UserHandler) List(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		users []model.User
		err   error
	)
	switch {
	case cl.IsSuperuser:
		users, err = h.Users.ListAll(ctx)
	case cl.Role == model.RoleAdmin && cl.TribeID != nil:
		users, err = h.Users.ListByTribe(ctx, *cl.TribeID)
	default:
		var u model.User
		u, err = h.Users.GetByID(ctx, cl.UserID)
		users = []model.User{u}
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	users = policy.FilterUsers(cl, users)
	out := make([]userResp, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResp(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// Get returns one user when the visibility policy allows it. An
// invisible user reads as 404 rather than 403 to avoid confirming
// existence.
func (h *UserHandler) Get(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err == repository.ErrUserNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !policy.CanSeeUser(cl, u) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// Update changes role, tribe membership and active flag. Admins may
// only touch members of their own tribe; superusers anyone.
func (h *UserHandler) Update(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !policy.CanManageUsers(cl) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req userUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	target, err := h.Users.GetByID(ctx, id)
	if err == repository.ErrUserNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !cl.IsSuperuser && !policy.CanSeeUser(cl, target) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	// Only superusers reassign tribes; admins manage within theirs.
	if req.TribeID != nil && !cl.IsSuperuser {
		if cl.TribeID == nil || *req.TribeID != *cl.TribeID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot assign other tribes"})
		}
	}

	role := target.Role
	if req.Role != "" {
		role = req.Role
	}
	tribeID := target.TribeID
	if req.TribeID != nil {
		tribeID = req.TribeID
	}
	isActive := target.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	if err := h.Users.Update(ctx, id, role, tribeID, isActive); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// Delete removes a user record. Admins are limited to their own tribe.
func (h *UserHandler) Delete(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !policy.CanManageUsers(cl) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if id == cl.UserID {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete yourself"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	target, err := h.Users.GetByID(ctx, id)
	if err == repository.ErrUserNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !cl.IsSuperuser && !policy.CanSeeUser(cl, target) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if target.IsSuperuser && !cl.IsSuperuser {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Users.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "user still holds a lease"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
