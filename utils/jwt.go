package utils

import (
	"errors"
	"fmt"
	"time"

	"portal/models"

	"github.com/golang-jwt/jwt"
)

var (
	// ErrMissingToken means no credential was presented.
	ErrMissingToken = errors.New("missing credential")
	// ErrInvalidToken covers bad signatures, malformed payloads and expired tokens.
	ErrInvalidToken = errors.New("invalid credential")
)

// TokenClaims is the signed payload of a session token.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// TokenSigner issues and validates HS256 session tokens with a fixed secret.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenSigner creates a signer. The secret must not be empty.
func NewTokenSigner(secret string, ttl time.Duration) (*TokenSigner, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &TokenSigner{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the validity window of issued tokens.
func (s *TokenSigner) TTL() time.Duration {
	return s.ttl
}

// GenerateToken signs the claim with an expiry of now+ttl.
func (s *TokenSigner) GenerateToken(claim models.IdentityClaim) (string, error) {
	now := s.now()
	claims := TokenClaims{
		Email: claim.Email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature and expiry and returns the embedded claim.
// Every failure wraps ErrMissingToken or ErrInvalidToken so callers can
// respond uniformly while logging the underlying cause.
func (s *TokenSigner) ValidateToken(tokenString string) (models.IdentityClaim, error) {
	if tokenString == "" {
		return models.IdentityClaim{}, ErrMissingToken
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return models.IdentityClaim{}, fmt.Errorf("%w: %s", ErrInvalidToken, describeParseError(err))
	}
	if !token.Valid {
		return models.IdentityClaim{}, fmt.Errorf("%w: token not valid", ErrInvalidToken)
	}
	// StandardClaims.Valid accepts tokens without exp.
	if claims.ExpiresAt == 0 {
		return models.IdentityClaim{}, fmt.Errorf("%w: token has no expiry", ErrInvalidToken)
	}
	if claims.Email == "" {
		return models.IdentityClaim{}, fmt.Errorf("%w: token has no email claim", ErrInvalidToken)
	}
	return models.IdentityClaim{Email: claims.Email}, nil
}

func describeParseError(err error) string {
	var verr *jwt.ValidationError
	if errors.As(err, &verr) {
		switch {
		case verr.Errors&jwt.ValidationErrorMalformed != 0:
			return "malformed token"
		case verr.Errors&jwt.ValidationErrorSignatureInvalid != 0:
			return "signature invalid"
		case verr.Errors&jwt.ValidationErrorExpired != 0:
			return "token expired"
		case verr.Errors&jwt.ValidationErrorUnverifiable != 0:
			return "token unverifiable"
		}
	}
	return err.Error()
}
