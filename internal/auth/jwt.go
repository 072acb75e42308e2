package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateToken signs an HS256 token carrying userID that expires after ttl.
func GenerateToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates tokenString and returns the user id it carries.
func ParseToken(tokenString string, secret []byte) (string, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", fmt.Errorf("%w: token expired", common.ErrorInvalidToken)
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", common.ErrorInvalidToken
	}
	return claims.UserID, nil
}
