package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/repository"
)

// AccountHandler serves the shared-account CRUD. Accounts always belong
// to a tribe; admins manage their own tribe's accounts, superusers any.
// Deletion composes with the lease manager: any live lease is released
// (and its history row written) in the same transaction that removes
// the account.
type AccountHandler struct {
	Accounts *repository.AccountRepo
	Leases   *repository.LeaseRepo
}

func NewAccountHandler(a *repository.AccountRepo, l *repository.LeaseRepo) *AccountHandler {
	return &AccountHandler{Accounts: a, Leases: l}
}

type accountReq struct {
	Name      string  `json:"name"`
	ShortCode string  `json:"short_code"`
	TribeID   *uint64 `json:"tribe_id"` // superusers only; others get their own tribe
}

type accountResp struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	ShortCode string    `json:"short_code"`
	TribeID   uint64    `json:"tribe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountResp(a model.Account) accountResp {
	return accountResp{ID: a.ID, Name: a.Name, ShortCode: a.ShortCode, TribeID: a.TribeID, CreatedAt: a.CreatedAt}
}

// canManage reports whether the caller may mutate accounts of tribeID.
func canManageAccounts(c echo.Context, tribeID uint64) bool {
	cl, ok := claims(c)
	if !ok {
		return false
	}
	if cl.IsSuperuser {
		return true
	}
	return cl.Role == model.RoleAdmin && cl.TribeID != nil && *cl.TribeID == tribeID
}

// Create registers a shared account under a tribe. Admins create within
// their own tribe; a tribe-less admin cannot create accounts at all.
func (h *AccountHandler) Create(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req accountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.ShortCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and short_code required"})
	}

	var tribeID uint64
	switch {
	case cl.IsSuperuser && req.TribeID != nil:
		tribeID = *req.TribeID
	case cl.TribeID != nil:
		tribeID = *cl.TribeID
	default:
		return c.JSON(http.StatusConflict, echo.Map{"error": "caller has no tribe"})
	}
	if !canManageAccounts(c, tribeID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	a := model.Account{Name: req.Name, ShortCode: req.ShortCode, TribeID: tribeID}
	if err := h.Accounts.Create(ctx, &a); err != nil {
		switch err {
		case repository.ErrAccountNameExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "account name already exists"})
		case repository.ErrShortCodeExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "short code already exists"})
		case repository.ErrTribeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tribe not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
	}
	return c.JSON(http.StatusCreated, toAccountResp(a))
}

func (h *AccountHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid account id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Accounts.GetByID(ctx, id)
	if err == repository.ErrAccountNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toAccountResp(a))
}

// List returns all accounts for superusers, or the caller's tribe's
// accounts otherwise. Tribe-less callers see an empty list.
func (h *AccountHandler) List(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		accounts []model.Account
		err      error
	)
	switch {
	case cl.IsSuperuser:
		accounts, err = h.Accounts.ListAll(ctx)
	case cl.TribeID != nil:
		accounts, err = h.Accounts.ListByTribe(ctx, *cl.TribeID)
	default:
		accounts = []model.Account{}
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]accountResp, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResp(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"accounts": out})
}

// Update renames an account or changes its short code.
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid account id"})
	}
	var req accountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.ShortCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and short_code required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Accounts.GetByID(ctx, id)
	if err == repository.ErrAccountNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !canManageAccounts(c, a.TribeID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	a.Name, a.ShortCode = req.Name, req.ShortCode
	if err := h.Accounts.Update(ctx, a); err != nil {
		switch err {
		case repository.ErrAccountNameExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "account name already exists"})
		case repository.ErrShortCodeExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "short code already exists"})
		case repository.ErrAccountNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update account failed"})
	}
	return c.JSON(http.StatusOK, toAccountResp(a))
}

// Delete removes an account. If a lease is live on it, the lease is
// released and its history row written inside the same transaction, so
// no occupancy ever vanishes without a log entry.
func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid account id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Accounts.GetByID(ctx, id)
	if err == repository.ErrAccountNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !canManageAccounts(c, a.TribeID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	tx, err := h.Leases.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete account failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := h.Leases.ReleaseByAccountTx(ctx, tx, id); err != nil && err != repository.ErrLeaseNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete account failed"})
	}
	if err := h.Accounts.DeleteTx(ctx, tx, id); err != nil {
		if err == repository.ErrAccountNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete account failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete account failed"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"message": "account deleted"})
}
