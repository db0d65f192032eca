package shared

import "github.com/golang-jwt/jwt/v5"

// shared types across the application
// 1st: the authenticated caller attached to each request
// 2nd: auth claims structure for JWT authentication in HTTP API

// Actor is the caller identity established by the auth layer.
// Anonymous requests carry a nil *Actor, never an empty ID.
type Actor struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// NewActor returns nil for an empty id so absence stays a nil pointer.
func NewActor(userID, username string) *Actor {
	if userID == "" {
		return nil
	}
	return &Actor{UserID: userID, Username: username}
}

type AuthClaims struct {
	UserID   string `json:"user_id"`
	UserName string `json:"username"`
	jwt.RegisteredClaims
}
