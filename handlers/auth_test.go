package handlers

import (
	"errors"
	"net/http"
	"testing"

	"portal/models"
	"portal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingIssuer struct{}

func (failingIssuer) GenerateToken(models.IdentityClaim) (string, error) {
	return "", errors.New("signing failed")
}

func TestIssueTokenHandler_SetsCookie(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{Signer: env.signer, Cookies: utils.CookieOptionsFor(false)}
	env.router.POST("/jwt", h.IssueTokenHandler)

	w := env.do(http.MethodPost, "/jwt", map[string]string{"email": "u@x.com"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]interface{}](t, w)["success"])
	assert.NotContains(t, w.Body.String(), "token")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, utils.TokenCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	claim, err := env.signer.ValidateToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", claim.Email)
}

func TestIssueTokenHandler_ProductionCookie(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{Signer: env.signer, Cookies: utils.CookieOptionsFor(true)}
	env.router.POST("/jwt", h.IssueTokenHandler)

	w := env.do(http.MethodPost, "/jwt", map[string]string{"email": "u@x.com"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	cookie := w.Result().Cookies()[0]
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestIssueTokenHandler_RejectsBadBodies(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{Signer: env.signer}
	env.router.POST("/jwt", h.IssueTokenHandler)

	for name, body := range map[string]interface{}{
		"missing email": map[string]string{},
		"not an email":  map[string]string{"email": "nobody"},
		"malformed":     "{",
	} {
		t.Run(name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/jwt", body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, w.Result().Cookies())
		})
	}
}

func TestIssueTokenHandler_SigningFailure(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{Signer: failingIssuer{}}
	env.router.POST("/jwt", h.IssueTokenHandler)

	w := env.do(http.MethodPost, "/jwt", map[string]string{"email": "u@x.com"}, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestIssueTokenHandler_ErrorsAbortChain(t *testing.T) {
	env := newTestEnv(t)
	after := 0
	next := func(*gin.Context) { after++ }
	env.router.POST("/jwt", (&AuthHandler{Signer: env.signer}).IssueTokenHandler, next)
	env.router.POST("/jwt-failing", (&AuthHandler{Signer: failingIssuer{}}).IssueTokenHandler, next)

	w := env.do(http.MethodPost, "/jwt", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, messageOf(t, w))

	w = env.do(http.MethodPost, "/jwt-failing", map[string]string{"email": "u@x.com"}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to issue token", messageOf(t, w))

	assert.Zero(t, after)
}

func TestLogoutHandler_ExpiresCookie(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{Signer: env.signer}
	env.router.POST("/logout", h.LogoutHandler)

	w := env.do(http.MethodPost, "/logout", nil, env.sessionCookie(t, "u@x.com"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]interface{}](t, w)["success"])
	cookie := w.Result().Cookies()[0]
	assert.Equal(t, utils.TokenCookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}
