package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenCookieName is the cookie carrying the session token.
const TokenCookieName = "token"

// CookieOptions are the attributes shared by the set and clear operations.
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
}

// CookieOptionsFor returns cross-site cookies in production and strict
// same-site cookies everywhere else.
func CookieOptionsFor(production bool) CookieOptions {
	if production {
		return CookieOptions{Secure: true, SameSite: http.SameSiteNoneMode}
	}
	return CookieOptions{Secure: false, SameSite: http.SameSiteStrictMode}
}

// SetTokenCookie writes the token as an HTTP-only session cookie. Expiry is
// carried by the signed payload, not by the cookie.
func SetTokenCookie(c *gin.Context, token string, opts CookieOptions) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearTokenCookie overwrites the token cookie with one that expires now.
func ClearTokenCookie(c *gin.Context, opts CookieOptions) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
