package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "sweeps-admin"

// Claims 后台会话 JWT Claims
// ID (jti) 即 redis 中的会话 ID，用于强制下线
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken 生成会话 Token
func GenerateToken(secret []byte, sessionID, email string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expireTime := now.Add(ttl)

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expireTime),
			Issuer:    tokenIssuer,
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := tokenClaims.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expireTime, nil
}

// ParseToken 验证会话 Token
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.ID == "" || claims.Email == "" {
			return nil, errors.New("token is missing session claims")
		}
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}
