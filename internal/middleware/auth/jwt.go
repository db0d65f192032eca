package auth

import (
	"errors"
	"fmt"

	"vidtube/internal/shared"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingUser  = errors.New("token has no user id")
)

// JWTVerifier checks access tokens issued by the account service.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses an HS256 token and returns the actor it names.
func (v *JWTVerifier) Verify(tokenString string) (*shared.Actor, error) {
	claims := &shared.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	actor := shared.NewActor(claims.UserID, claims.UserName)
	if actor == nil {
		return nil, ErrMissingUser
	}
	return actor, nil
}
