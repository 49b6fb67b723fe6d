package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and checks the bearer tokens handed out at sign-in.
type TokenService struct {
	secretKey     []byte
	issuer        string
	tokenDuration time.Duration
	accounts      domain.DocumentStore
}

// NewTokenService builds the service. When accounts is not nil, a valid
// token is also rejected once the users/{uid} record no longer exists.
func NewTokenService(secretKey string, issuer string, tokenDuration time.Duration, accounts domain.DocumentStore) *TokenService {
	return &TokenService{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		tokenDuration: tokenDuration,
		accounts:      accounts,
	}
}

func (s *TokenService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("token service: failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid token claims")
	}

	if claims.Issuer != s.issuer {
		return "", errors.New("invalid token issuer")
	}
	if claims.Subject == "" {
		return "", errors.New("invalid token subject")
	}

	if s.accounts != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if _, err := s.accounts.Get(lookupCtx, domain.UsersCollection, claims.Subject); err != nil {
			return "", fmt.Errorf("user no longer exists or store error: %w", err)
		}
	}

	return claims.Subject, nil
}
