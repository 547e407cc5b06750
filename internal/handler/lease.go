package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/arktribe/tribestore/internal/logger"
	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/queue"
	"github.com/arktribe/tribestore/internal/repository"
	"github.com/arktribe/tribestore/internal/service"
)

// LeaseHandler exposes the occupancy surface: acquire, transition,
// release and the live dashboard. All mutual exclusion lives in the
// repository (unique indexes); the handler only translates outcomes to
// HTTP statuses and publishes the release event.
type LeaseHandler struct {
	Leases   *repository.LeaseRepo
	Users    *repository.UserRepo
	Accounts *repository.AccountRepo
}

func NewLeaseHandler(l *repository.LeaseRepo, u *repository.UserRepo, a *repository.AccountRepo) *LeaseHandler {
	return &LeaseHandler{Leases: l, Users: u, Accounts: a}
}

type acquireReq struct {
	AccountID uint64 `json:"account_id"`
}
type transitionReq struct {
	Status  string  `json:"status"`
	AFKText *string `json:"afk_text"`
}

type leaseResp struct {
	ID        uint64    `json:"id"`
	AccountID uint64    `json:"account_id"`
	UserID    uint64    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	Status    string    `json:"status"`
	AFKText   *string   `json:"afk_text,omitempty"`
}

type leaseViewResp struct {
	leaseResp
	Username    string `json:"username"`
	AccountName string `json:"account_name"`
	ShortCode   string `json:"short_code"`
}

type leaseLogResp struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	AccountID    uint64    `json:"account_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	DurationSecs int64     `json:"duration_secs"`
}

func toLeaseResp(l model.Lease) leaseResp {
	return leaseResp{
		ID:        l.ID,
		AccountID: l.AccountID,
		UserID:    l.UserID,
		StartTime: l.StartTime,
		Status:    l.Status,
		AFKText:   l.AFKText,
	}
}

func toLeaseLogResp(l model.LeaseLog) leaseLogResp {
	return leaseLogResp{
		ID:           l.ID,
		UserID:       l.UserID,
		AccountID:    l.AccountID,
		StartTime:    l.StartTime,
		EndTime:      l.EndTime,
		DurationSecs: l.DurationSecs,
	}
}

// Acquire takes occupancy of an account for the caller. The outcome is
// decided by a single constrained INSERT: 201 on success, 409 when the
// account is taken or the caller already holds a lease, 404 when the
// account does not exist.
func (h *LeaseHandler) Acquire(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req acquireReq
	if err := c.Bind(&req); err != nil || req.AccountID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "account_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	l, err := h.Leases.Acquire(ctx, cl.UserID, req.AccountID)
	switch err {
	case nil:
	case repository.ErrAccountAlreadyLeased:
		return c.JSON(http.StatusConflict, echo.Map{"error": "account already leased"})
	case repository.ErrUserAlreadyLeasing:
		return c.JSON(http.StatusConflict, echo.Map{"error": "you already hold a lease"})
	case repository.ErrAccountNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "acquire failed"})
	}
	return c.JSON(http.StatusCreated, toLeaseResp(l))
}

// Mine returns the caller's active lease, or 404 when none is held.
func (h *LeaseHandler) Mine(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	l, err := h.Leases.GetByUser(ctx, cl.UserID)
	if err == repository.ErrLeaseNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active lease"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toLeaseResp(l))
}

// Transition changes the status of a lease (playing, gacha_tower, afk).
// Only the occupant or a superuser may do so; any status may follow any
// other. afk_text is kept only for the afk status.
func (h *LeaseHandler) Transition(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lease id"})
	}
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be playing, gacha_tower or afk"})
	}
	if req.Status != model.StatusAFK {
		req.AFKText = nil
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	l, err := h.Leases.Transition(ctx, id, cl.UserID, cl.IsSuperuser, req.Status, req.AFKText)
	switch err {
	case nil:
	case repository.ErrLeaseNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lease not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your lease"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transition failed"})
	}
	return c.JSON(http.StatusOK, toLeaseResp(l))
}

// Release ends a lease and returns the history row written for it. The
// repository guarantees the log insert and the lease delete commit
// together; afterwards a lease.released event is published best-effort.
func (h *LeaseHandler) Release(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lease id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	log, err := h.Leases.Release(ctx, id, cl.UserID, cl.IsSuperuser)
	switch err {
	case nil:
	case repository.ErrLeaseNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lease not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your lease"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release failed"})
	}

	h.publishReleased(log)
	return c.JSON(http.StatusOK, toLeaseLogResp(log))
}

// List returns the live occupancy dashboard: every active lease joined
// with occupant and account names.
func (h *LeaseHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	views, err := h.Leases.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]leaseViewResp, 0, len(views))
	for _, v := range views {
		out = append(out, leaseViewResp{
			leaseResp:   toLeaseResp(v.Lease),
			Username:    v.Username,
			AccountName: v.AccountName,
			ShortCode:   v.ShortCode,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"leases": out})
}

// publishReleased emits the lease.released event. The release already
// committed, so failures here are logged and swallowed.
func (h *LeaseHandler) publishReleased(log model.LeaseLog) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	ev := queue.LeaseReleasedEvent{
		EventID:      uuid.NewString(),
		LeaseLogID:   log.ID,
		UserID:       log.UserID,
		AccountID:    log.AccountID,
		StartTime:    log.StartTime.Format(time.RFC3339),
		EndTime:      log.EndTime.Format(time.RFC3339),
		DurationSecs: log.DurationSecs,
	}
	if u, err := h.Users.GetByID(ctx, log.UserID); err == nil {
		ev.Username = u.Username
	}
	if a, err := h.Accounts.GetByID(ctx, log.AccountID); err == nil {
		ev.AccountName = a.Name
	}
	if err := service.PublishLeaseReleased(ctx, ev); err != nil {
		logger.Warn("publish lease.released failed",
			zap.Uint64("lease_log_id", log.ID), zap.Error(err))
	}
}
