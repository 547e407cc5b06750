package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/repository"
)

// LeaseLogHandler serves the lease history queries. History is
// read-only over HTTP; rows appear only through lease releases.
type LeaseLogHandler struct {
	Logs *repository.LeaseLogRepo
}

func NewLeaseLogHandler(l *repository.LeaseLogRepo) *LeaseLogHandler {
	return &LeaseLogHandler{Logs: l}
}

// ByUser returns the completed leases of one user, newest first. Users
// may query themselves; admins and superusers may query anyone.
func (h *LeaseLogHandler) ByUser(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if id != cl.UserID && !cl.IsSuperuser && cl.Role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	logs, err := h.Logs.ListByUser(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": toLeaseLogResps(logs)})
}

// ByAccount returns the completed leases of one account, newest first.
func (h *LeaseLogHandler) ByAccount(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid account id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	logs, err := h.Logs.ListByAccount(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": toLeaseLogResps(logs)})
}

// ByRange returns the completed leases whose end time falls inside
// [from, to). Both bounds are RFC3339 query params; to defaults to now.
func (h *LeaseLogHandler) ByRange(c echo.Context) error {
	from, err := time.Parse(time.RFC3339, c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be RFC3339"})
	}
	to := time.Now().UTC()
	if s := c.QueryParam("to"); s != "" {
		to, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be RFC3339"})
		}
	}
	if !from.Before(to) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must precede to"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	logs, err := h.Logs.ListByRange(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": toLeaseLogResps(logs)})
}

func toLeaseLogResps(logs []model.LeaseLog) []leaseLogResp {
	out := make([]leaseLogResp, 0, len(logs))
	for _, l := range logs {
		out = append(out, toLeaseLogResp(l))
	}
	return out
}
