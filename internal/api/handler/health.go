package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles the liveness probe. Returns 200 immediately;
// confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// StorePinger is the slice of the store the readiness probe needs.
type StorePinger interface {
	Ping() error
}

// ReadinessHandler handles the readiness probe. Checks that the durable
// snapshot is reachable before declaring the service ready.
type ReadinessHandler struct {
	store StorePinger
}

func NewReadinessHandler(store StorePinger) *ReadinessHandler {
	return &ReadinessHandler{store: store}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	deps := make(map[string]dependencyStatus)
	healthy := true

	if err := h.store.Ping(); err != nil {
		deps["store"] = dependencyStatus{Status: "down", Error: err.Error()}
		healthy = false
	} else {
		deps["store"] = dependencyStatus{Status: "up"}
	}

	resp := readinessResponse{Status: "ready", Dependencies: deps}
	code := http.StatusOK
	if !healthy {
		resp.Status = "not ready"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
