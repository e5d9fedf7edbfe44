package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"portal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		verified string
		owner    string
		allowed  bool
	}{
		{name: "exact match", verified: "a@x.com", owner: "a@x.com", allowed: true},
		{name: "case differs", verified: "a@x.com", owner: "A@x.com", allowed: false},
		{name: "different user", verified: "a@x.com", owner: "b@x.com", allowed: false},
		{name: "whitespace is significant", verified: "a@x.com", owner: " a@x.com", allowed: false},
		{name: "empty owner", verified: "a@x.com", owner: "", allowed: false},
		{name: "no verified identity", verified: "", owner: "", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(models.IdentityClaim{Email: tt.verified}, tt.owner)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrOwnershipMismatch)
			}
		})
	}
}

func ownerRouter(gate *Gate, claim *models.IdentityClaim, called *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/things/:email", func(c *gin.Context) {
		if claim != nil {
			SetClaim(c, *claim)
		}
		c.Next()
	}, gate.RequireOwnerParam("email"), func(c *gin.Context) {
		*called = true
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireOwnerParam(t *testing.T) {
	tests := []struct {
		name     string
		claim    *models.IdentityClaim
		path     string
		wantCode int
		wantCall bool
	}{
		{name: "owner", claim: &models.IdentityClaim{Email: "u@x.com"}, path: "/api/things/u@x.com", wantCode: http.StatusOK, wantCall: true},
		{name: "other owner", claim: &models.IdentityClaim{Email: "v@y.com"}, path: "/api/things/u@x.com", wantCode: http.StatusUnauthorized},
		{name: "case mismatch", claim: &models.IdentityClaim{Email: "u@x.com"}, path: "/api/things/U@x.com", wantCode: http.StatusUnauthorized},
		{name: "no claim", claim: nil, path: "/api/things/u@x.com", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingRecorder{}
			var called bool
			r := ownerRouter(NewGate(nil, rec), tt.claim, &called)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCall, called)
			if !tt.wantCall {
				assert.JSONEq(t, `{"message":"unauthorized access"}`, w.Body.String())
				assert.Equal(t, []string{ReasonOwnership}, rec.reasons)
			}
		})
	}
}
