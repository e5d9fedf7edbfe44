package middleware

import (
	"context"
	"errors"
	"net/http"

	"portal/models"
	"portal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Rejection reasons. They are logged and counted, never sent to the client.
const (
	ReasonMissing   = "missing"
	ReasonInvalid   = "invalid"
	ReasonOwnership = "ownership"
)

const (
	unauthenticatedMessage = "Unauthorized access"
	unauthorizedMessage    = "unauthorized access"
)

// TokenValidator checks a raw token and returns the identity it carries.
type TokenValidator interface {
	ValidateToken(token string) (models.IdentityClaim, error)
}

// RejectionRecorder counts requests stopped by the gate.
type RejectionRecorder interface {
	RecordAuthRejection(reason string)
}

// Gate bundles the cookie Verifier and the Ownership Authorizer.
type Gate struct {
	validator TokenValidator
	recorder  RejectionRecorder
}

// NewGate returns a Gate. recorder may be nil.
func NewGate(validator TokenValidator, recorder RejectionRecorder) *Gate {
	return &Gate{validator: validator, recorder: recorder}
}

// VerifyToken reads the token cookie, validates it and attaches the claim to
// the request. Missing, malformed, tampered and expired tokens all produce
// the same 401 body.
func (g *Gate) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.TokenCookieName)
		if err != nil || token == "" {
			g.reject(c, ReasonMissing, utils.ErrMissingToken)
			return
		}

		claim, err := g.validator.ValidateToken(token)
		if err != nil {
			reason := ReasonInvalid
			if errors.Is(err, utils.ErrMissingToken) {
				reason = ReasonMissing
			}
			g.reject(c, reason, err)
			return
		}

		SetClaim(c, claim)
		c.Next()
	}
}

func (g *Gate) reject(c *gin.Context, reason string, err error) {
	zap.L().Info("VerifyToken: request rejected",
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	g.record(reason)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": unauthenticatedMessage})
}

func (g *Gate) record(reason string) {
	if g.recorder != nil {
		g.recorder.RecordAuthRejection(reason)
	}
}

type claimContextKey struct{}

// claimKey is the gin context key holding the verified claim.
const claimKey = "user"

// SetClaim attaches a verified claim to both the gin and the request context.
func SetClaim(c *gin.Context, claim models.IdentityClaim) {
	c.Set(claimKey, claim)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), claimContextKey{}, claim))
}

// ClaimFromContext returns the claim attached by VerifyToken.
func ClaimFromContext(c *gin.Context) (models.IdentityClaim, bool) {
	v, ok := c.Get(claimKey)
	if !ok {
		return models.IdentityClaim{}, false
	}
	claim, ok := v.(models.IdentityClaim)
	return claim, ok
}

// ClaimFromRequestContext returns the verified claim from a plain context.
func ClaimFromRequestContext(ctx context.Context) (models.IdentityClaim, bool) {
	claim, ok := ctx.Value(claimContextKey{}).(models.IdentityClaim)
	return claim, ok
}
