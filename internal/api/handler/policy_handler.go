package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatewise/iam-system/internal/core/ports"
)

// PolicyHandler handles HTTP requests for policy management.
type PolicyHandler struct {
	service ports.PolicyService
}

func NewPolicyHandler(service ports.PolicyService) *PolicyHandler {
	return &PolicyHandler{service: service}
}

type permissionRequest struct {
	Resource string `json:"resource" validate:"required"`
	Action   string `json:"action" validate:"required"`
}

type createPolicyRequest struct {
	Name        string              `json:"name" validate:"required"`
	Permissions []permissionRequest `json:"permissions" validate:"dive"`
}

type updatePolicyRequest struct {
	Name        *string              `json:"name"`
	Permissions *[]permissionRequest `json:"permissions" validate:"omitempty,dive"`
}

func toPermissionInputs(reqs []permissionRequest) []ports.PermissionInput {
	perms := make([]ports.PermissionInput, 0, len(reqs))
	for _, r := range reqs {
		perms = append(perms, ports.PermissionInput{Resource: r.Resource, Action: r.Action})
	}
	return perms
}

// Create handles POST /v1/policies.
//
// @Summary      Create a policy
// @Tags         policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPolicyRequest  true  "Policy details"
// @Success      201   {object}  domain.Policy
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/policies [post]
func (h *PolicyHandler) Create(c echo.Context) error {
	var req createPolicyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	policy, err := h.service.CreatePolicy(c.Request().Context(), ports.CreatePolicyInput{
		Name:        req.Name,
		Permissions: toPermissionInputs(req.Permissions),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, policy)
}

// Get handles GET /v1/policies/:id.
//
// @Summary      Get a policy by id
// @Tags         policies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Policy id"
// @Success      200  {object}  domain.Policy
// @Failure      404  {object}  errorResponse
// @Router       /v1/policies/{id} [get]
func (h *PolicyHandler) Get(c echo.Context) error {
	policy, err := h.service.GetPolicy(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, policy)
}

// List handles GET /v1/policies.
//
// @Summary      List all policies
// @Tags         policies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Policy
// @Router       /v1/policies [get]
func (h *PolicyHandler) List(c echo.Context) error {
	policies, err := h.service.ListPolicies(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, policies)
}

// Update handles PATCH /v1/policies/:id.
//
// @Summary      Update a policy
// @Tags         policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Policy id"
// @Param        body  body      updatePolicyRequest  true  "Fields to update"
// @Success      200   {object}  domain.Policy
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/policies/{id} [patch]
func (h *PolicyHandler) Update(c echo.Context) error {
	var req updatePolicyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdatePolicyInput{
		ID:   c.Param("id"),
		Name: req.Name,
	}
	if req.Permissions != nil {
		perms := toPermissionInputs(*req.Permissions)
		input.Permissions = &perms
	}

	policy, err := h.service.UpdatePolicy(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, policy)
}

// Delete handles DELETE /v1/policies/:id. Groups linking the policy have it
// pruned in the same operation.
//
// @Summary      Delete a policy
// @Tags         policies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Policy id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/policies/{id} [delete]
func (h *PolicyHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePolicy(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
