package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatewise/iam-system/internal/core/ports"
)

// GroupHandler handles HTTP requests for group management.
type GroupHandler struct {
	service ports.GroupService
}

func NewGroupHandler(service ports.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

type createGroupRequest struct {
	Name     string   `json:"name" validate:"required"`
	Policies []string `json:"policies"`
}

type updateGroupRequest struct {
	Name     *string   `json:"name"`
	Policies *[]string `json:"policies"`
}

// Create handles POST /v1/groups.
//
// @Summary      Create a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGroupRequest  true  "Group details"
// @Success      201   {object}  domain.Group
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/groups [post]
func (h *GroupHandler) Create(c echo.Context) error {
	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	group, err := h.service.CreateGroup(c.Request().Context(), ports.CreateGroupInput{
		Name:     req.Name,
		Policies: req.Policies,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, group)
}

// Get handles GET /v1/groups/:id.
//
// @Summary      Get a group by id
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Group id"
// @Success      200  {object}  domain.Group
// @Failure      404  {object}  errorResponse
// @Router       /v1/groups/{id} [get]
func (h *GroupHandler) Get(c echo.Context) error {
	group, err := h.service.GetGroup(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, group)
}

// List handles GET /v1/groups.
//
// @Summary      List all groups
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Group
// @Router       /v1/groups [get]
func (h *GroupHandler) List(c echo.Context) error {
	groups, err := h.service.ListGroups(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

// Update handles PATCH /v1/groups/:id.
//
// @Summary      Update a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Group id"
// @Param        body  body      updateGroupRequest  true  "Fields to update"
// @Success      200   {object}  domain.Group
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/groups/{id} [patch]
func (h *GroupHandler) Update(c echo.Context) error {
	var req updateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	group, err := h.service.UpdateGroup(c.Request().Context(), ports.UpdateGroupInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		Policies: req.Policies,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, group)
}

// Delete handles DELETE /v1/groups/:id. Member users have the group pruned
// from their membership in the same operation.
//
// @Summary      Delete a group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Group id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/groups/{id} [delete]
func (h *GroupHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteGroup(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
