package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

// AuthzHandler exposes the permission resolution engine as a probe, so
// clients can ask "may I?" without triggering the guarded operation.
type AuthzHandler struct {
	authz ports.AuthzService
}

func NewAuthzHandler(authz ports.AuthzService) *AuthzHandler {
	return &AuthzHandler{authz: authz}
}

type authzCheckRequest struct {
	Resource string `json:"resource" validate:"required"`
	Action   string `json:"action" validate:"required"`
}

type authzCheckResponse struct {
	Allowed  bool   `json:"allowed"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Check handles POST /v1/authz/check for the authenticated user.
//
// @Summary      Check whether the caller holds a permission
// @Tags         authz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      authzCheckRequest  true  "Permission to check"
// @Success      200   {object}  authzCheckResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/authz/check [post]
func (h *AuthzHandler) Check(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req authzCheckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	allowed, err := h.authz.Authorize(c.Request().Context(), userID, domain.Permission{
		Resource: req.Resource,
		Action:   req.Action,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown identity")
		}
		return err
	}

	return c.JSON(http.StatusOK, authzCheckResponse{
		Allowed:  allowed,
		Resource: req.Resource,
		Action:   req.Action,
	})
}
