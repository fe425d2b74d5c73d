package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestManager() *TokenManager {
	return NewTokenManager("secret", "balance-forecast", time.Minute)
}

// TestIssueAndParse проверяет выпуск и разбор токена доступа.
func TestIssueAndParse(t *testing.T) {
	manager := newTestManager()
	userID := uuid.New()

	token, err := manager.Issue(userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.Value == "" {
		t.Fatal("expected signed token")
	}

	got, err := manager.Parse(token.Value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %s, got %s", userID, got)
	}
}

// TestParseRejectsForeignToken проверяет отказ для чужой подписи и издателя.
func TestParseRejectsForeignToken(t *testing.T) {
	userID := uuid.New()

	otherSecret, err := NewTokenManager("other", "balance-forecast", time.Minute).Issue(userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	otherIssuer, err := NewTokenManager("secret", "someone-else", time.Minute).Issue(userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	manager := newTestManager()
	for _, token := range []string{otherSecret.Value, otherIssuer.Value, "not-a-jwt"} {
		if _, err := manager.Parse(token); err == nil {
			t.Fatalf("expected error for %q", token)
		}
	}
}

// TestParseRejectsExpiredToken проверяет истечение срока действия.
func TestParseRejectsExpiredToken(t *testing.T) {
	manager := newTestManager()
	issuedAt := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issuedAt }

	token, err := manager.Issue(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	manager.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	if _, err := manager.Parse(token.Value); err == nil {
		t.Fatal("expected expired token error")
	}
}

// TestJWTMiddleware проверяет сохранение user_id и ответы 401.
func TestJWTMiddleware(t *testing.T) {
	manager := newTestManager()
	userID := uuid.New()
	token, err := manager.Issue(userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := echo.New()
	var seen uuid.UUID
	handler := JWTMiddleware(manager)(func(c echo.Context) error {
		id, ok := UserIDFromContext(c)
		if !ok {
			t.Fatal("expected user id in context")
		}
		seen = id
		return c.NoContent(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: "Bearer " + token.Value, status: http.StatusNoContent},
		{name: "lowercase scheme", header: "bearer " + token.Value, status: http.StatusNoContent},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer  ", status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer garbage", status: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler(c)
			status := rec.Code
			if err != nil {
				httpErr, ok := err.(*echo.HTTPError)
				if !ok {
					t.Fatalf("unexpected error: %v", err)
				}
				status = httpErr.Code
			}

			if status != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, status)
			}
		})
	}

	if seen != userID {
		t.Fatalf("expected %s, got %s", userID, seen)
	}
}
