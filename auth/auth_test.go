package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"cafe-api/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthorizer(t *testing.T, secret string, legacy bool) *Authorizer {
	t.Helper()
	a, err := NewAuthorizer(Options{
		APIKey:    "elumeze8",
		JWTSecret: secret,
		TokenTTL:  time.Minute,
		Legacy:    legacy,
		Cost:      bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("NewAuthorizer: %v", err)
	}
	return a
}

func newRouter(a *Authorizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/token", a.IssueToken)
	r.DELETE("/protected", a.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": "ok"})
	})
	return r
}

func TestCheckAPIKey(t *testing.T) {
	a := newTestAuthorizer(t, "", false)
	if !a.CheckAPIKey("elumeze8") {
		t.Fatal("expected correct key to pass")
	}
	for _, k := range []string{"", "elumeze", "ELUMEZE8", "elumeze8 "} {
		if a.CheckAPIKey(k) {
			t.Fatalf("expected %q to be rejected", k)
		}
	}
}

func TestNewAuthorizerRequiresKey(t *testing.T) {
	if _, err := NewAuthorizer(Options{}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestRequireAdminWithAPIKey(t *testing.T) {
	r := newRouter(newTestAuthorizer(t, "", false))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/protected?apiKey=elumeze8", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/protected?apiKey=wrong", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"not authorized"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestRequireAdminLegacyStatus(t *testing.T) {
	r := newRouter(newTestAuthorizer(t, "", true))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/protected?apiKey=wrong", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected legacy 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not authorized") || strings.Contains(w.Body.String(), "success") {
		t.Fatalf("handler should not have run: %s", w.Body.String())
	}
}

func TestIssuedTokenAuthorizesDelete(t *testing.T) {
	r := newRouter(newTestAuthorizer(t, "jwt-secret", false))

	form := url.Values{"api_key": {"elumeze8"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("token: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.AccessToken == "" || body.ExpiresIn != 60 {
		t.Fatalf("unexpected token response %s", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+body.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("bearer delete: expected 200, got %d", w.Code)
	}
}

func TestBearerRejectsNonAdminAndForeignTokens(t *testing.T) {
	r := newRouter(newTestAuthorizer(t, "jwt-secret", false))

	guest, _ := utils.GenerateToken([]byte("jwt-secret"), "guest", time.Minute)
	foreign, _ := utils.GenerateToken([]byte("someone-else"), AdminRole, time.Minute)

	for _, tok := range []string{guest, foreign, "garbage"} {
		req := httptest.NewRequest(http.MethodDelete, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	}
}

func TestIssueTokenFailures(t *testing.T) {
	disabled := newRouter(newTestAuthorizer(t, "", false))
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader("api_key=elumeze8"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	disabled.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when tokens disabled, got %d", w.Code)
	}

	r := newRouter(newTestAuthorizer(t, "jwt-secret", false))
	req = httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader("api_key=nope"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong key, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/token", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without key, got %d", w.Code)
	}
}
