package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsel/admin-console-api/internal/handlers"
	"github.com/fsel/admin-console-api/internal/services"
)

func resetRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// The service is never reached in these cases, so its gateway client can
	// be nil.
	handler := handlers.NewProvisioningHandler(services.NewProvisioningService(nil, "Fsel2025@"))
	router.POST("/students/reset-placement-test", handler.ResetPlacementTest)
	router.POST("/students", handler.AddStudent)
	router.DELETE("/students/:userId", handler.DeleteStudent)
	return router
}

func TestResetPlacementTest_RefusesClientAccounts(t *testing.T) {
	router := resetRouter()

	body := `{
		"userId": "user-1",
		"studentId": "student-1",
		"fullName": "Nguyen Van A",
		"email": "a@example.com",
		"customerObject": "Client"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students/reset-placement-test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not allowed for Client accounts")
}

func TestResetPlacementTest_RejectsIncompleteRecord(t *testing.T) {
	router := resetRouter()

	// Missing email: the workflow cannot recreate an account without it.
	body := `{"userId": "user-1", "fullName": "Nguyen Van A"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students/reset-placement-test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
}

func TestAddStudent_RejectsInvalidEmail(t *testing.T) {
	router := resetRouter()

	body := `{"fullName": "Tran Thi B", "email": "not-an-email"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email format")
}
