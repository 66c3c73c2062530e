package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

// Require enforces that the authenticated user holds the (resource, action)
// permission, resolved through the authorization service. A user id that no
// longer resolves is a 401, not a 403: the identity itself is stale.
func Require(authz ports.AuthzService, resource, action string) echo.MiddlewareFunc {
	required := domain.Permission{Resource: resource, Action: action}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			allowed, err := authz.Authorize(c.Request().Context(), userID, required)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown identity")
				}
				return err
			}
			if !allowed {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
