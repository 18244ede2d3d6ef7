package ports

import "time"

// AuthInfo carries the validated claims of a bearer token.
type AuthInfo struct {
	ClientID  string
	ExpiresAt time.Time
	Claims    map[string]any
}

// Contract for validating bearer tokens before a request reaches the tools.
type TokenVerifier interface {
	Verify(tokenString string) (AuthInfo, error)
}
