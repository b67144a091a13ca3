package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/luxury-estate-api/internal/config"
	"github.com/iliyamo/luxury-estate-api/internal/utils"
)

// adminSubject is the sub claim of staff tokens; there is a single admin account.
const adminSubject = "admin"

// AuthHandler bundles dependencies for the admin login endpoint.
type AuthHandler struct {
	Cfg    config.Config
	Logger *zap.Logger
}

// NewAuthHandler constructs an AuthHandler and panics if the logger is nil.
func NewAuthHandler(cfg config.Config, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Logger: logger}
}

// ----- DTOs -----

type loginReq struct {
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	Access utils.AccessToken `json:"access"`
	Role   string            `json:"role"`
}

// Login exchanges the admin password for a short-lived access token.
func (h *AuthHandler) Login(c echo.Context) error {
	if !h.Cfg.AdminEnabled() {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "admin login disabled"})
	}
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":  "validation failed",
			"fields": fieldErrors(err),
		})
	}
	if !utils.VerifyPassword(h.Cfg.AdminPassHash, req.Password) {
		h.Logger.Info("admin login rejected", zap.String("ip", c.RealIP()))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, adminSubject, utils.RoleAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		h.Logger.Error("sign admin token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}
	return c.JSON(http.StatusOK, loginResp{Access: tok, Role: utils.RoleAdmin})
}
