package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gatewise/iam-system/docs"
	"github.com/gatewise/iam-system/internal/api/handler"
	"github.com/gatewise/iam-system/internal/api/middleware"
	"github.com/gatewise/iam-system/internal/core/domain"
	"github.com/gatewise/iam-system/internal/core/service"
	"github.com/gatewise/iam-system/internal/infrastructure/db/file"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(store *file.Store, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("iam"))

	// --- Dependencies ---
	userRepo := file.NewUserRepository(store)
	groupRepo := file.NewGroupRepository(store)
	policyRepo := file.NewPolicyRepository(store)
	requestRepo := file.NewAccessRequestRepository(store)

	authService := service.NewAuthService(userRepo, jwtSecret, tokenTTL)
	authzService := service.NewAuthzService(file.NewAuthzRepository(store), log)
	userService := service.NewUserService(userRepo, log)
	groupService := service.NewGroupService(groupRepo, log)
	policyService := service.NewPolicyService(policyRepo, log)
	requestService := service.NewAccessRequestService(requestRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	groupHandler := handler.NewGroupHandler(groupService)
	policyHandler := handler.NewPolicyHandler(policyService)
	requestHandler := handler.NewAccessRequestHandler(requestService)
	authzHandler := handler.NewAuthzHandler(authzService)

	authn := middleware.Auth(jwtSecret)
	can := func(resource, action string) echo.MiddlewareFunc {
		return middleware.Require(authzService, resource, action)
	}

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(store)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the snapshot reachable?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Entity routes ---
	v1 := e.Group("/v1", authn)

	v1.POST("/authz/check", authzHandler.Check)

	users := v1.Group("/users")
	users.POST("", userHandler.Create, can(domain.ResourceUsers, domain.ActionCreate))
	users.GET("", userHandler.List, can(domain.ResourceUsers, domain.ActionRead))
	users.GET("/:id", userHandler.Get, can(domain.ResourceUsers, domain.ActionRead))
	users.PATCH("/:id", userHandler.Update, can(domain.ResourceUsers, domain.ActionUpdate))
	users.DELETE("/:id", userHandler.Delete, can(domain.ResourceUsers, domain.ActionDelete))

	groups := v1.Group("/groups")
	groups.POST("", groupHandler.Create, can(domain.ResourceGroups, domain.ActionCreate))
	groups.GET("", groupHandler.List, can(domain.ResourceGroups, domain.ActionRead))
	groups.GET("/:id", groupHandler.Get, can(domain.ResourceGroups, domain.ActionRead))
	groups.PATCH("/:id", groupHandler.Update, can(domain.ResourceGroups, domain.ActionUpdate))
	groups.DELETE("/:id", groupHandler.Delete, can(domain.ResourceGroups, domain.ActionDelete))

	policies := v1.Group("/policies")
	policies.POST("", policyHandler.Create, can(domain.ResourcePolicies, domain.ActionCreate))
	policies.GET("", policyHandler.List, can(domain.ResourcePolicies, domain.ActionRead))
	policies.GET("/:id", policyHandler.Get, can(domain.ResourcePolicies, domain.ActionRead))
	policies.PATCH("/:id", policyHandler.Update, can(domain.ResourcePolicies, domain.ActionUpdate))
	policies.DELETE("/:id", policyHandler.Delete, can(domain.ResourcePolicies, domain.ActionDelete))

	requests := v1.Group("/access-requests")
	requests.POST("", requestHandler.Create, can(domain.ResourceAccessRequests, domain.ActionCreate))
	requests.GET("", requestHandler.List, can(domain.ResourceAccessRequests, domain.ActionRead))
	requests.GET("/:id", requestHandler.Get, can(domain.ResourceAccessRequests, domain.ActionRead))
	requests.POST("/:id/approve", requestHandler.Approve, can(domain.ResourceAccessRequests, domain.ActionUpdate))
	requests.POST("/:id/deny", requestHandler.Deny, can(domain.ResourceAccessRequests, domain.ActionUpdate))

	return e
}
