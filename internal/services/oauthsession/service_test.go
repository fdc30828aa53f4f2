package oauthsession

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/readbacklabs/readback-web/internal/config"
)

var testSigningKey = []byte("test-signing-key-for-sessions")

func testConfig() config.SessionConfig {
	return config.SessionConfig{
		SessionCookieName: "readback_session",
		SessionLifetime:   30 * 24 * time.Hour,
	}
}

func TestCreateAndGetSession(t *testing.T) {
	svc := NewService(testConfig(), testSigningKey, nil)
	ctx := context.Background()

	w := httptest.NewRecorder()
	if err := svc.Create(ctx, w, "google", "S1", true, false); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "readback_session" {
		t.Errorf("Expected session cookie, got %s", cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Error("Session cookie must be httpOnly")
	}
	if cookie.MaxAge != 30*24*3600 {
		t.Errorf("Expected 30-day max-age, got %d", cookie.MaxAge)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)

	session, err := svc.Get(ctx, r)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session == nil {
		t.Fatal("Expected a session")
	}
	if session.Provider != "google" || session.Bearer != "S1" || !session.Elevated || session.Staff {
		t.Errorf("Unexpected session contents: %+v", session)
	}
}

func TestGetWithoutCookie(t *testing.T) {
	svc := NewService(testConfig(), testSigningKey, nil)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	session, err := svc.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session != nil {
		t.Error("Expected no session without a cookie")
	}
}

func TestGetRejectsTamperedCookie(t *testing.T) {
	svc := NewService(testConfig(), testSigningKey, nil)

	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		SessionID: "forged",
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("attacker-key"))
	if err != nil {
		t.Fatalf("Failed to sign forged token: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "readback_session", Value: forged})

	session, err := svc.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session != nil {
		t.Error("Tampered cookie must not yield a session")
	}
}

func TestClearRemovesSession(t *testing.T) {
	svc := NewService(testConfig(), testSigningKey, nil)
	ctx := context.Background()

	w := httptest.NewRecorder()
	if err := svc.Create(ctx, w, "discord", "S1", false, true); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	cookie := w.Result().Cookies()[0]

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)

	w2 := httptest.NewRecorder()
	svc.Clear(ctx, w2, r)

	cleared := w2.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 || cleared[0].Value != "" {
		t.Error("Clear should expire the session cookie")
	}

	session, err := svc.Get(ctx, r)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session != nil {
		t.Error("Cleared session should not resolve even with the old cookie")
	}
}

func TestUpdateBearer(t *testing.T) {
	svc := NewService(testConfig(), testSigningKey, nil)
	ctx := context.Background()

	w := httptest.NewRecorder()
	if err := svc.Create(ctx, w, "google", "S1", false, false); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(w.Result().Cookies()[0])

	session, err := svc.Get(ctx, r)
	if err != nil || session == nil {
		t.Fatalf("Get failed: %v", err)
	}

	if err := svc.UpdateBearer(ctx, session, "S2"); err != nil {
		t.Fatalf("UpdateBearer failed: %v", err)
	}

	updated, err := svc.Get(ctx, r)
	if err != nil || updated == nil {
		t.Fatalf("Get after update failed: %v", err)
	}
	if updated.Bearer != "S2" {
		t.Errorf("Expected updated bearer S2, got %q", updated.Bearer)
	}
}
