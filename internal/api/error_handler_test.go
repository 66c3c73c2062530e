package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gatewise/iam-system/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrorCodes(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrGroupNotFound, http.StatusNotFound},
		{domain.ErrPolicyNotFound, http.StatusNotFound},
		{domain.ErrRequestNotFound, http.StatusNotFound},
		{domain.ErrUsernameTaken, http.StatusConflict},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrGroupNameTaken, http.StatusConflict},
		{domain.ErrPolicyNameTaken, http.StatusConflict},
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.NewDanglingRefError("groups", []string{"g-9"}), http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrPendingRequestExists, http.StatusUnprocessableEntity},
		{domain.ErrAlreadyMember, http.StatusUnprocessableEntity},
		{domain.ErrSelfDeletion, http.StatusUnprocessableEntity},
		{fmt.Errorf("transition: %w", domain.ErrSnapshotWrite), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		code, _ := handleError(t, tt.err)
		if code != tt.want {
			t.Errorf("%v: status = %d, want %d", tt.err, code, tt.want)
		}
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, body := handleError(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", code, http.StatusTeapot)
	}
	if body.Error != "short and stout" {
		t.Fatalf("body = %q", body.Error)
	}
}

func TestErrorHandler_UnknownErrorsAreMasked(t *testing.T) {
	code, body := handleError(t, errors.New("pq: connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if strings.Contains(body.Error, "pq:") {
		t.Fatalf("internal details leaked: %q", body.Error)
	}
}

func TestErrorHandler_DanglingRefNamesIDs(t *testing.T) {
	_, body := handleError(t, domain.NewDanglingRefError("policies", []string{"p-1", "p-2"}))
	if !strings.Contains(body.Error, "p-1") || !strings.Contains(body.Error, "p-2") {
		t.Fatalf("offending ids missing from message: %q", body.Error)
	}
}
