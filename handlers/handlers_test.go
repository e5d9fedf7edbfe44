package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portal/middleware"
	"portal/models"
	"portal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "handlers-test-secret"

type countingRefresher struct {
	calls int
}

func (r *countingRefresher) RequestRefresh(context.Context) error {
	r.calls++
	return nil
}

type testEnv struct {
	signer *utils.TokenSigner
	gate   *middleware.Gate
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, utils.RegisterValidators())

	signer, err := utils.NewTokenSigner(testSecret, time.Hour)
	require.NoError(t, err)
	return &testEnv{
		signer: signer,
		gate:   middleware.NewGate(signer, nil),
		router: gin.New(),
	}
}

// sessionCookie returns a valid token cookie for email.
func (e *testEnv) sessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()
	token, err := e.signer.GenerateToken(models.IdentityClaim{Email: email})
	require.NoError(t, err)
	return &http.Cookie{Name: utils.TokenCookieName, Value: token}
}

func (e *testEnv) do(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]interface{}](t, w)["message"].(string)
}

// testContext returns a context cancelled when the test finishes
// (equivalent of testing.T.Context, which requires Go 1.24).
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
