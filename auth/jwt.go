package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims are the claims a JWTAuthority expects.
// The subject is the ID of the Client.
type Claims struct {
	Data map[string]any `json:"data,omitempty"`
	jwt.RegisteredClaims
}

// A JWTAuthority validates HS256 signed JWTs.
type JWTAuthority struct {
	key    []byte
	parser *jwt.Parser
}

// NewJWTAuthority constructs a *JWTAuthority verifying tokens with key.
func NewJWTAuthority(key string) (*JWTAuthority, error) {
	if key == "" {
		return nil, fmt.Errorf(`%w: jwt key cannot be ""`, ErrNotValid)
	}

	return &JWTAuthority{
		key:    []byte(key),
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
	}, nil
}

// Fetch decodes token into a *Client.
// Any parse or validation failure is a *Rejection carrying the parser's reason.
func (a *JWTAuthority) Fetch(_ context.Context, token string) (Identity, error) {
	claims := new(Claims)
	_, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.key, nil
	})
	if err != nil {
		return nil, Reject(err.Error())
	}

	if claims.Subject == "" {
		return nil, Reject("token has no subject")
	}

	return &Client{ID: claims.Subject, Data: claims.Data}, nil
}

// Issue signs a token for id that expires after ttl.
func (a *JWTAuthority) Issue(id string, data map[string]any, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Data: data,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
}
