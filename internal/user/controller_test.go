package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service, _ := newTestService(t)
	controller := NewUserController(service)

	router := gin.New()
	router.POST("/auth/register", controller.Register)
	router.POST("/auth/login", controller.Login)
	router.POST("/auth/logout", controller.Logout)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	router := setupAuthRouter(t)

	w := postJSON(router, "/auth/register", `{"username": "alice", "password": "secret"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterEndpoint_Duplicate(t *testing.T) {
	router := setupAuthRouter(t)

	w := postJSON(router, "/auth/register", `{"username": "alice", "password": "p1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/auth/register", `{"username": "alice", "password": "p2"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["error"], "already exists")
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	router := setupAuthRouter(t)

	w := postJSON(router, "/auth/register", `{"username": "alice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router := setupAuthRouter(t)

	w := postJSON(router, "/auth/register", `{"username": "bob", "password": "secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/auth/login", `{"username": "bob", "password": "secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["token"])
	assert.Equal(t, float64(600), response["expires_in"])

	// The session also lands in a cookie for browser clients.
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	found := false
	for _, c := range cookies {
		if c.Name == "session" && c.Value != "" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found)
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	router := setupAuthRouter(t)

	w := postJSON(router, "/auth/register", `{"username": "bob", "password": "secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password and unknown user answer identically.
	wrong := postJSON(router, "/auth/login", `{"username": "bob", "password": "wrong"}`)
	unknown := postJSON(router, "/auth/login", `{"username": "nobody", "password": "secret"}`)

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestLogoutEndpoint_AlwaysSucceeds(t *testing.T) {
	router := setupAuthRouter(t)

	// Without any session.
	w := postJSON(router, "/auth/logout", ``)
	assert.Equal(t, http.StatusOK, w.Code)

	// With a garbage token.
	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
