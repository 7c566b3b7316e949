package models

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set of a session token:
// {"email": ..., "sub": <numeric user id>, "iat": ..., "exp": ...}.
//
// The subject is numeric on the wire, so it shadows the string "sub" of
// [jwt.RegisteredClaims].
type TokenClaims struct {
	Email   string `json:"email"`
	Subject int64  `json:"sub"`
	jwt.RegisteredClaims
}

// GetSubject satisfies [jwt.Claims] with the decimal form of Subject.
func (c TokenClaims) GetSubject() (string, error) {
	return strconv.FormatInt(c.Subject, 10), nil
}

// Token is an issued session token together with the data it carries.
type Token struct {
	// SignedString is the compact JWS representation of the token.
	SignedString string

	// UserID is the value of the "sub" claim.
	UserID int64

	// Email is the value of the "email" claim.
	Email string
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
