// Package auth выдаёт и проверяет mock-токены специалистов.
//
// Это не модель безопасности: токен подписан общим секретом, не истекает
// и выдаётся без проверки пароля.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

type ProfessionalClaim struct {
	ID int64 `json:"id"`
}

// Claims полезная нагрузка токена: {"professional": {"id": N}}
type Claims struct {
	Professional *ProfessionalClaim `json:"professional,omitempty"`
	jwt.StandardClaims
}

type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Sign подписывает токен для специалиста
func (i *TokenIssuer) Sign(professionalID int64) (string, error) {
	claims := Claims{Professional: &ProfessionalClaim{ID: professionalID}}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// Verify проверяет подпись и возвращает ID специалиста из токена
func (i *TokenIssuer) Verify(tokenString string) (int64, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	if claims.Professional == nil {
		return 0, ErrInvalidToken
	}

	return claims.Professional.ID, nil
}
