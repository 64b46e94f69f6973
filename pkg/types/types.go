package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT payload attached to every authenticated request.
// IsAdmin mirrors the admin claim granted by an administrator and is the
// sole authorization gate for admin-only routes.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
