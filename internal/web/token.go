package web

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// downloadTTL bounds how long a rendered plan page can still be exported.
const downloadTTL = 24 * time.Hour

// exportClaims carries a generated plan back to the export endpoint so the
// server never has to store it.
type exportClaims struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Plan string `json:"plan"`
	jwt.RegisteredClaims
}

func signExportToken(secret []byte, id, name, plan string, createdAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, exportClaims{
		Name: name,
		Date: createdAt.Format(time.DateOnly),
		Plan: plan,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(createdAt),
			ExpiresAt: jwt.NewNumericDate(createdAt.Add(downloadTTL)),
		},
	})
	return token.SignedString(secret)
}

func parseExportToken(secret []byte, raw string) (*exportClaims, error) {
	claims := &exportClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid download token: %w", err)
	}
	return claims, nil
}
