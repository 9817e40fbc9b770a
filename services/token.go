package services

import (
	"errors"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint
	Role   int
}

type tokenClaims struct {
	UserId uint `json:"uid"`
	Role   int  `json:"role"`
	jwt.StandardClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken issues a signed access token carrying the user id and role.
// minutes controls the expiry window.
func GenerateToken(info UserInfo, minutes int) (string, error) {
	claims := tokenClaims{
		UserId: info.UserId,
		Role:   info.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Duration(minutes) * time.Minute).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken validates a token string and returns the embedded user id and role.
func ParseToken(tokenString string) (uint, int, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return 0, 0, err
	}
	if !token.Valid {
		return 0, 0, errors.New("invalid token")
	}
	return claims.UserId, claims.Role, nil
}
