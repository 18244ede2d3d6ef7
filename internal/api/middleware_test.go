package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"market-price-service/internal/ports"
)

type fakeVerifier struct {
	info ports.AuthInfo
	err  error
}

func (f fakeVerifier) Verify(string) (ports.AuthInfo, error) {
	return f.info, f.err
}

func authTestRouter(verifier ports.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/sse", bearerAuth(verifier, slog.Default()), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestBearerAuthNilVerifierAllowsAll(t *testing.T) {
	r := authTestRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sse", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestBearerAuthMissingToken(t *testing.T) {
	r := authTestRouter(fakeVerifier{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sse", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestBearerAuthInvalidToken(t *testing.T) {
	r := authTestRouter(fakeVerifier{err: errors.New("expired")})

	req := httptest.NewRequest(http.MethodGet, "/sse", nil)
	req.Header.Set("Authorization", "Bearer bad-token")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestBearerAuthValidToken(t *testing.T) {
	r := authTestRouter(fakeVerifier{info: ports.AuthInfo{ClientID: "client-42"}})

	req := httptest.NewRequest(http.MethodGet, "/sse", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestBearerAuthRejectsNonBearerScheme(t *testing.T) {
	r := authTestRouter(fakeVerifier{info: ports.AuthInfo{ClientID: "client-42"}})

	req := httptest.NewRequest(http.MethodGet, "/sse", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
