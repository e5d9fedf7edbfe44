package handlers

import (
	"net/http"

	"portal/models"
	"portal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenIssuer signs a session token for a claim.
type TokenIssuer interface {
	GenerateToken(claim models.IdentityClaim) (string, error)
}

// AuthHandler issues and revokes the session cookie.
type AuthHandler struct {
	Signer  TokenIssuer
	Cookies utils.CookieOptions
}

// IssueTokenHandler handles POST /jwt. The token only ever travels in the
// cookie.
func (h *AuthHandler) IssueTokenHandler(c *gin.Context) {
	logger := getLogger(c)

	var claim models.IdentityClaim
	if err := c.ShouldBindJSON(&claim); err != nil {
		logger.Debug("IssueToken: invalid request body", zap.Error(err))
		message(c, http.StatusBadRequest, utils.BindingMessage(err))
		return
	}

	token, err := h.Signer.GenerateToken(claim)
	if err != nil {
		logger.Error("IssueToken: failed to sign token", zap.String("email", claim.Email), zap.Error(err))
		message(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.SetTokenCookie(c, token, h.Cookies)
	logger.Info("IssueToken: session started", zap.String("email", claim.Email))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LogoutHandler handles POST /logout by expiring the cookie. Copies of the
// token held elsewhere stay valid until their own expiry.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	utils.ClearTokenCookie(c, h.Cookies)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
