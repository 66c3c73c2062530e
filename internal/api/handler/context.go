package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatewise/iam-system/internal/core/domain"
)

// ctxIdentity extracts the identity claims injected by the Auth middleware
// and fast-fails before any service call: both user_id and role must be
// present, which proves the middleware ran and the token carried a full
// identity.
func ctxIdentity(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	if userID == "" || roleStr == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, domain.Role(roleStr), nil
}
