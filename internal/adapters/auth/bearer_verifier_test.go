package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer   = "http://dashboard:8050"
	testAudience = "market-price-mcp"
)

func newTestKey(t *testing.T) (*rsa.PrivateKey, []byte) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, pemBytes
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss": testIssuer,
		"aud": testAudience,
		"sub": "client-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
}

func TestVerifyValidToken(t *testing.T) {
	key, pemBytes := newTestKey(t)

	verifier, err := NewBearerVerifier(pemBytes, testIssuer, testAudience)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := verifier.Verify(signToken(t, key, validClaims()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ClientID != "client-42" {
		t.Fatalf("client id = %q, want %q", info.ClientID, "client-42")
	}
	if info.ExpiresAt.Before(time.Now()) {
		t.Fatalf("unexpected expiry %v", info.ExpiresAt)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	key, pemBytes := newTestKey(t)
	otherKey, _ := newTestKey(t)

	verifier, err := NewBearerVerifier(pemBytes, testIssuer, testAudience)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	wrongAudience := validClaims()
	wrongAudience["aud"] = "someone-else"

	wrongIssuer := validClaims()
	wrongIssuer["iss"] = "http://evil:8050"

	noExpiry := validClaims()
	delete(noExpiry, "exp")

	cases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong key", token: signToken(t, otherKey, validClaims())},
		{name: "expired", token: signToken(t, key, expired)},
		{name: "wrong audience", token: signToken(t, key, wrongAudience)},
		{name: "wrong issuer", token: signToken(t, key, wrongIssuer)},
		{name: "missing expiry", token: signToken(t, key, noExpiry)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := verifier.Verify(tc.token); err == nil {
				t.Fatal("expected verification to fail")
			}
		})
	}
}

func TestVerifyRejectsNonRSAAlgorithm(t *testing.T) {
	_, pemBytes := newTestKey(t)

	verifier, err := NewBearerVerifier(pemBytes, testIssuer, testAudience)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected HS256 token to be rejected")
	}
}

func TestNewBearerVerifierValidation(t *testing.T) {
	_, pemBytes := newTestKey(t)

	if _, err := NewBearerVerifier(pemBytes, "", testAudience); err == nil {
		t.Fatal("expected error for missing issuer")
	}
	if _, err := NewBearerVerifier(pemBytes, testIssuer, ""); err == nil {
		t.Fatal("expected error for missing audience")
	}
	if _, err := NewBearerVerifier([]byte("not a key"), testIssuer, testAudience); err == nil {
		t.Fatal("expected error for malformed key")
	}
}
