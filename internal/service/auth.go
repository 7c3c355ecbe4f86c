package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

var ErrInvalidToken = errors.New("невалидный токен")

// InitJWT устанавливает секрет подписи токенов ведущего
func InitJWT(secret string) {
	jwtSecret = []byte(secret)
}

type hostClaims struct {
	MatchID string `json:"match_id"`
	jwt.RegisteredClaims
}

// IssueHostToken выдает токен ведущего матча. Только владелец этого
// токена может взводить подкрутку и сбрасывать матч.
func IssueHostToken(matchID string) (string, error) {
	claims := hostClaims{
		MatchID: matchID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseHostToken проверяет токен и возвращает ID матча
func ParseHostToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &hostClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*hostClaims)
	if !ok || claims.MatchID == "" {
		return "", ErrInvalidToken
	}
	return claims.MatchID, nil
}
