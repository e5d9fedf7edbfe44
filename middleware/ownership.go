package middleware

import (
	"errors"
	"net/http"

	"portal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrOwnershipMismatch means the verified identity does not own the resource.
var ErrOwnershipMismatch = errors.New("identity does not own the requested resource")

// Authorize allows access iff the verified email equals requestedOwner
// exactly. No case folding or trimming is applied.
func Authorize(claim models.IdentityClaim, requestedOwner string) error {
	if claim.Email == "" || claim.Email != requestedOwner {
		return ErrOwnershipMismatch
	}
	return nil
}

// RequireOwnerParam compares the verified claim with a path parameter. It
// must run after VerifyToken.
func (g *Gate) RequireOwnerParam(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.AuthorizeOwner(c, c.Param(param)) {
			return
		}
		c.Next()
	}
}

// AuthorizeOwner checks the verified claim against owner and writes the
// rejection response when they differ. Handlers use it when the owner comes
// from a body or a stored document.
func (g *Gate) AuthorizeOwner(c *gin.Context, owner string) bool {
	claim, _ := ClaimFromContext(c)
	if err := Authorize(claim, owner); err != nil {
		zap.L().Info("Authorize: ownership mismatch",
			zap.String("claim", claim.Email),
			zap.String("owner", owner),
			zap.String("path", c.Request.URL.Path),
		)
		g.record(ReasonOwnership)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": unauthorizedMessage})
		return false
	}
	return true
}
