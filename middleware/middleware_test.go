package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"munchmate/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, userID string, roles []string) string {
	t.Helper()
	claims := &Claims{
		Username: "tester",
		UserID:   userID,
		Role:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestOptionalAuthWithoutToken(t *testing.T) {
	called := false
	h := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		if uid := r.Context().Value(globals.UserIDKey); uid != nil {
			t.Fatalf("anonymous request carries user id %v", uid)
		}
	})

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/menu", nil), nil)
	if !called {
		t.Fatal("handler was not reached without a token")
	}
}

func TestOptionalAuthWithToken(t *testing.T) {
	var got any
	h := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		got = r.Context().Value(globals.UserIDKey)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", []string{"user"}))
	h(httptest.NewRecorder(), req, nil)

	if got != "u1" {
		t.Fatalf("expected user id u1 in context, got %v", got)
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	h := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run without a token")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil), nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	staffToken := signToken(t, "s1", []string{"user", "staff"})
	userToken := signToken(t, "u1", []string{"user"})

	reached := false
	h := RequireRole("staff", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		reached = true
	})

	req := httptest.NewRequest(http.MethodPost, "/api/menu", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)
	h(httptest.NewRecorder(), req, nil)
	if !reached {
		t.Fatal("staff token was not admitted")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/menu", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	h(rec, req, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-staff, got %d", rec.Code)
	}
}
