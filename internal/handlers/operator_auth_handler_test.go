package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/fsel/admin-console-api/internal/handlers"
	"github.com/fsel/admin-console-api/internal/middleware"
	"github.com/fsel/admin-console-api/internal/services"
	"github.com/fsel/admin-console-api/pkg/jwt"
	"github.com/fsel/admin-console-api/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	tm := jwt.NewTokenManager("test-secret", "test-issuer", 12)
	service := services.NewOperatorAuthService("ops@fsel.edu.vn", "operator-password", tm)
	handler := handlers.NewOperatorAuthHandler(service, "", false)

	router := gin.New()
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/logout", handler.Logout)
	return router
}

func postLogin(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestOperatorLogin_Success(t *testing.T) {
	router := authRouter()

	w := postLogin(router, `{"username": "ops@fsel.edu.vn", "password": "operator-password"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.OperatorSessionCookieName {
			sessionCookie = c
		}
	}
	if assert.NotNil(t, sessionCookie) {
		assert.NotEmpty(t, sessionCookie.Value)
		assert.True(t, sessionCookie.HttpOnly)
	}
}

func TestOperatorLogin_WrongPassword(t *testing.T) {
	router := authRouter()

	w := postLogin(router, `{"username": "ops@fsel.edu.vn", "password": "wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")

	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, middleware.OperatorSessionCookieName, c.Name)
	}
}

func TestOperatorLogin_MissingFields(t *testing.T) {
	router := authRouter()

	w := postLogin(router, `{"username": "ops@fsel.edu.vn"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
}

func TestOperatorLogout_ClearsCookie(t *testing.T) {
	router := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.OperatorSessionCookieName {
			found = true
			assert.Empty(t, c.Value)
			assert.Negative(t, c.MaxAge)
		}
	}
	assert.True(t, found)
}
