package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"market-price-service/internal/ports"
)

// BearerVerifier validates RS256 bearer tokens against a configured
// public key, expected issuer, and audience.
type BearerVerifier struct {
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
}

func NewBearerVerifier(publicKeyPEM []byte, issuer, audience string) (*BearerVerifier, error) {
	if issuer == "" || audience == "" {
		return nil, errors.New("auth: issuer and audience must be configured")
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("auth: parse public key: %w", err)
	}

	return &BearerVerifier{
		publicKey: key,
		issuer:    issuer,
		audience:  audience,
	}, nil
}

// Verify checks the token signature, issuer, audience, and expiry and
// returns the validated identity.
func (v *BearerVerifier) Verify(tokenString string) (ports.AuthInfo, error) {
	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (any, error) { return v.publicKey, nil },
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return ports.AuthInfo{}, fmt.Errorf("verify token: %w", err)
	}
	if !token.Valid {
		return ports.AuthInfo{}, errors.New("invalid token")
	}

	info := ports.AuthInfo{Claims: claims}
	if sub, err := claims.GetSubject(); err == nil {
		info.ClientID = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}

	return info, nil
}
