package auth

import (
	"errors"
	"time"

	"laundry-be/internal/apperr"
	"laundry-be/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 24 * time.Hour

type CustomClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

func (c *CustomClaims) Identity() utils.Identity {
	return utils.Identity{
		ID:       c.ID,
		Username: c.Username,
		Role:     c.Role,
		FullName: c.FullName,
	}
}

// TokenIssuer signs and verifies session tokens with one HMAC secret.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

func (t *TokenIssuer) Generate(id utils.Identity) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("JWT_SECRET is not set")
	}

	now := t.now()
	claims := CustomClaims{
		ID:       id.ID,
		Username: id.Username,
		Role:     id.Role,
		FullName: id.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies tokenStr. Expired tokens return apperr.ErrSessionExpired,
// any other failure apperr.ErrInvalidToken.
func (t *TokenIssuer) Parse(tokenStr string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&CustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return t.secret, nil
		},
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ErrSessionExpired
		}
		return nil, apperr.ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, apperr.ErrInvalidToken
	}

	return claims, nil
}
