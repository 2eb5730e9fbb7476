package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of the signed session cookie. The session id
// keys the server-side cart entry, so it must not be forgeable.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
