package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/ports"
)

// AccessRequestHandler handles HTTP requests for the access request workflow.
type AccessRequestHandler struct {
	service ports.AccessRequestService
}

func NewAccessRequestHandler(service ports.AccessRequestService) *AccessRequestHandler {
	return &AccessRequestHandler{service: service}
}

type createAccessRequestRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	Reason  string `json:"reason"`
}

// Create handles POST /v1/access-requests. The request is opened on behalf of
// the authenticated user; you cannot request membership for someone else.
//
// @Summary      Request membership in a group
// @Tags         access-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccessRequestRequest  true  "Request details"
// @Success      201   {object}  domain.AccessRequest
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/access-requests [post]
func (h *AccessRequestHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createAccessRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.service.CreateRequest(c.Request().Context(), ports.CreateAccessRequestInput{
		UserID:  userID,
		GroupID: req.GroupID,
		Reason:  req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, request)
}

// Get handles GET /v1/access-requests/:id. Non-admins only see their own.
//
// @Summary      Get an access request by id
// @Tags         access-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.AccessRequest
// @Failure      404  {object}  errorResponse
// @Router       /v1/access-requests/{id} [get]
func (h *AccessRequestHandler) Get(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	request, err := h.service.GetRequest(c.Request().Context(), ports.GetAccessRequestInput{
		ID:        c.Param("id"),
		ActorID:   userID,
		ActorRole: role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// List handles GET /v1/access-requests. Admins see every request; everyone
// else sees only their own. An optional ?status= filters by state.
//
// @Summary      List access requests
// @Tags         access-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(pending, approved, denied)
// @Success      200     {array}   domain.AccessRequest
// @Router       /v1/access-requests [get]
func (h *AccessRequestHandler) List(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	requests, err := h.service.ListRequests(c.Request().Context(), ports.ListAccessRequestsInput{
		ActorID:   userID,
		ActorRole: role,
		Status:    domain.RequestStatus(c.QueryParam("status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// Approve handles POST /v1/access-requests/:id/approve.
//
// @Summary      Approve a pending access request
// @Tags         access-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.AccessRequest
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/access-requests/{id}/approve [post]
func (h *AccessRequestHandler) Approve(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	request, err := h.service.Approve(c.Request().Context(), ports.ProcessAccessRequestInput{
		ID:          c.Param("id"),
		ProcessorID: userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// Deny handles POST /v1/access-requests/:id/deny.
//
// @Summary      Deny a pending access request
// @Tags         access-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.AccessRequest
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/access-requests/{id}/deny [post]
func (h *AccessRequestHandler) Deny(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	request, err := h.service.Deny(c.Request().Context(), ports.ProcessAccessRequestInput{
		ID:          c.Param("id"),
		ProcessorID: userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}
