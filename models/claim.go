package models

// IdentityClaim is the identity embedded in a session token. It is only
// trustworthy once the token signature has been verified.
type IdentityClaim struct {
	Email string `json:"email" binding:"required,email"`
}
