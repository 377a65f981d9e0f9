package utils

import (
	"errors"  // Sentinel errors
	"strconv" // Subject formatting
	"time"    // Token lifetime

	"github.com/golang-jwt/jwt/v5" // JWT library
)

const (
	TokenTTL    = 24 * time.Hour   // Login token lifetime
	TokenIssuer = "local-services" // iss claim on every token
)

// ErrInvalidToken covers every rejected token: bad signature, expired, wrong issuer or malformed
var ErrInvalidToken = errors.New("invalid token")

// Claims identify the logged in account and its role at login time
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT signs an HS256 token for the account
func GenerateJWT(userID uint, role, secret string) (string, error) {
	issuedAt := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}).SignedString([]byte(secret))
}

// ParseJWT validates a token issued by GenerateJWT and returns its claims
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
