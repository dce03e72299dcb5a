package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// APITokenTTL bounds how long an ops API token stays valid. Admins
// re-issue via the bot when it lapses.
const APITokenTTL = 24 * time.Hour

type Claims struct {
	UserID     uint  `json:"user_id"`
	TelegramID int64 `json:"telegram_id"`
	IsAdmin    bool  `json:"is_admin"`
	jwt.RegisteredClaims
}

// GenerateAPIToken creates a signed token granting ops API access.
func GenerateAPIToken(userID uint, telegramID int64, isAdmin bool, secret string) (string, error) {
	claims := &Claims{
		UserID:     userID,
		TelegramID: telegramID,
		IsAdmin:    isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(APITokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAPIToken validates and parses an ops API token.
func ValidateAPIToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
