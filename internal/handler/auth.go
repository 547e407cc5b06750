package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/config"
	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/repository"
	"github.com/arktribe/tribestore/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID          uint64  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	TribeID     *uint64 `json:"tribe_id,omitempty"`
	IsSuperuser bool    `json:"is_superuser"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		TribeID:     u.TribeID,
		IsSuperuser: u.IsSuperuser,
	}
}

func claimsOf(u model.User) utils.Claims {
	return utils.Claims{
		UserID:      u.ID,
		Role:        u.Role,
		TribeID:     u.TribeID,
		IsSuperuser: u.IsSuperuser,
	}
}

// issuePair creates an access/refresh pair for u and stores the refresh
// hash. Used by register, login and refresh alike.
func (h *AuthHandler) issuePair(c echo.Context, u model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, claimsOf(u), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}
	status := http.StatusOK
	if c.Request().Method == http.MethodPost && c.Path() == "/v1/auth/register" {
		status = http.StatusCreated
	}
	return c.JSON(status, authResp{
		User:    toUserPart(u),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw goes back to the client once
	})
}

// Register creates a user with the default role and returns a token
// pair immediately. New users start tribe-less; an admin assigns them
// to a tribe afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, model.RoleUser, nil, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrUsernameExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return h.issuePair(c, u)
}

// Login verifies username/password and returns a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return h.issuePair(c, u)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh access/refresh pair is issued.
func (h *AuthHandler) Refresh(c echo.Context) error {
	u, hash, ok := h.validateRefresh(c)
	if !ok {
		return nil // response already written
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return h.issuePair(c, u)
}

// RefreshAccess issues a new access token only, leaving the presented
// refresh token valid. Lighter than Refresh for frequent clients.
func (h *AuthHandler) RefreshAccess(c echo.Context) error {
	u, _, ok := h.validateRefresh(c)
	if !ok {
		return nil
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, claimsOf(u), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Logout revokes the presented refresh token. The access token simply
// expires on its own.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(req.RefreshToken)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// LogoutAll revokes every active refresh token of the authenticated
// caller, ending all of their sessions at once.
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Tokens.RevokeAllForUser(ctx, cl.UserID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "all sessions revoked"})
}

// Me returns the authenticated user's own record.
func (h *AuthHandler) Me(c echo.Context) error {
	cl, ok := claims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.Users.GetByID(ctx, cl.UserID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// validateRefresh binds the refresh_token body field, checks it against
// storage and loads the owning user. On failure it writes the error
// response and returns ok=false.
func (h *AuthHandler) validateRefresh(c echo.Context) (model.User, string, bool) {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
		return model.User{}, "", false
	}
	hash := utils.HashRefreshRaw(req.RefreshToken)

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		return model.User{}, "", false
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		return model.User{}, "", false
	}
	if !u.IsActive {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
		return model.User{}, "", false
	}
	return u, hash, true
}
