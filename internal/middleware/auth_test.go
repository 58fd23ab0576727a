package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/toolsite/core/internal/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNormalizeToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc.def.ghi": "abc.def.ghi",
		"bearer abc.def.ghi": "abc.def.ghi",
		"  abc.def.ghi  ":    "abc.def.ghi",
		"":                   "",
		"Bearer   spaced   ": "spaced",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeToken(input), "input %q", input)
	}
}

func authTestRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUserID(c), "role": CurrentRole(c)})
	})
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingToken(t *testing.T) {
	w := doRequest(authTestRouter(Auth()), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsValidToken(t *testing.T) {
	token, err := jwt.Sign("u1", "editor", time.Minute)
	assert.NoError(t, err)

	w := doRequest(authTestRouter(Auth()), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"u1"`)
}

func TestAdminOnlyRejectsNonAdmin(t *testing.T) {
	token, err := jwt.Sign("u1", "editor", time.Minute)
	assert.NoError(t, err)

	w := doRequest(authTestRouter(AdminOnly()), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnlyAcceptsAdmin(t *testing.T) {
	token, err := jwt.Sign("u1", "admin", time.Minute)
	assert.NoError(t, err)

	w := doRequest(authTestRouter(AdminOnly()), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestOptionalAuthPassesThrough(t *testing.T) {
	w := doRequest(authTestRouter(OptionalAuth()), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":""`)
}
