package utils

import (
	"testing"
	"time"

	"portal/models"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this_is_a_test_secret_for_the_portal"

func TestNewTokenSigner(t *testing.T) {
	_, err := NewTokenSigner("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenSigner(testSecret, 0)
	assert.Error(t, err)

	signer, err := NewTokenSigner(testSecret, 365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 365*24*time.Hour, signer.TTL())
}

func TestGenerateAndValidateToken_RoundTrip(t *testing.T) {
	signer, err := NewTokenSigner(testSecret, 365*24*time.Hour)
	require.NoError(t, err)

	for _, email := range []string{"u@x.com", "A.Mixed+Case@Example.org"} {
		token, err := signer.GenerateToken(models.IdentityClaim{Email: email})
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claim, err := signer.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, email, claim.Email)
	}
}

func TestGenerateToken_ExpiryIsNowPlusTTL(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	signer, err := NewTokenSigner(testSecret, 365*24*time.Hour)
	require.NoError(t, err)
	signer.now = func() time.Time { return issued }

	token, err := signer.GenerateToken(models.IdentityClaim{Email: "u@x.com"})
	require.NoError(t, err)

	claims := &TokenClaims{}
	_, _, err = new(jwt.Parser).ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, issued.Unix(), claims.IssuedAt)
	assert.Equal(t, issued.AddDate(0, 0, 365).Unix(), claims.ExpiresAt)
	assert.Equal(t, "u@x.com", claims.Email)
}

func TestValidateToken_Rejects(t *testing.T) {
	signer, err := NewTokenSigner(testSecret, time.Hour)
	require.NoError(t, err)

	expiredSigner, err := NewTokenSigner(testSecret, time.Hour)
	require.NoError(t, err)
	expiredSigner.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSigner.GenerateToken(models.IdentityClaim{Email: "u@x.com"})
	require.NoError(t, err)

	otherSigner, err := NewTokenSigner("a_completely_different_secret", time.Hour)
	require.NoError(t, err)
	foreign, err := otherSigner.GenerateToken(models.IdentityClaim{Email: "u@x.com"})
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{Email: "u@x.com"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{
		Email:          "u@x.com",
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty", token: "", wantErr: ErrMissingToken},
		{name: "garbage", token: "garbage", wantErr: ErrInvalidToken},
		{name: "expired", token: expired, wantErr: ErrInvalidToken},
		{name: "foreign secret", token: foreign, wantErr: ErrInvalidToken},
		{name: "no expiry", token: noExpiry, wantErr: ErrInvalidToken},
		{name: "no email", token: noEmail, wantErr: ErrInvalidToken},
		{name: "alg none", token: unsigned, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
