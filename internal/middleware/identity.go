package middleware

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller.
type Identity struct {
	UserID uint
	Role   domain.Role
}

func (i Identity) Actor() domain.Actor {
	return domain.Actor{UserID: i.UserID, Role: i.Role}
}

// Resolver turns a bearer token into an Identity.
type Resolver interface {
	Resolve(token string) (Identity, error)
}

// JWTResolver accepts HMAC-signed tokens carrying sub and role claims.
type JWTResolver struct {
	secret []byte
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (r *JWTResolver) Resolve(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return Identity{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	role := domain.RoleCustomer
	if s, _ := claims["role"].(string); s == string(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	return Identity{UserID: uint(sub), Role: role}, nil
}

// StaticResolver answers every request with the same identity. It is only
// wired when AUTH_MODE=static.
type StaticResolver struct {
	identity Identity
}

func NewStaticResolver(userID uint, role string) *StaticResolver {
	r := domain.RoleCustomer
	if role == string(domain.RoleAdmin) {
		r = domain.RoleAdmin
	}
	return &StaticResolver{identity: Identity{UserID: userID, Role: r}}
}

func (r *StaticResolver) Resolve(string) (Identity, error) {
	return r.identity, nil
}
