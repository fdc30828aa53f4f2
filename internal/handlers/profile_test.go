package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// An expired bearer with a live renewal credential renews exactly once and
// the profile fetch succeeds with the fresh credential.
func TestProfileRenewsExpiredBearer(t *testing.T) {
	var renews, profileHits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/renew":
			atomic.AddInt32(&renews, 1)
			json.NewEncoder(w).Encode(map[string]string{"access": "T2"})
		case "/profile":
			atomic.AddInt32(&profileHits, 1)
			if r.Header.Get("Authorization") != "Bearer T2" {
				http.Error(w, `{"detail":"token expired"}`, http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "u1", "email": "a@b.com"})
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	h := newHandlers(testConfig(server.URL))

	r := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	r.AddCookie(&http.Cookie{Name: "bearer", Value: "T-expired"})
	r.AddCookie(&http.Cookie{Name: "renewal", Value: "R1"})
	w := httptest.NewRecorder()
	h.HandleGetProfile(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := atomic.LoadInt32(&renews); got != 1 {
		t.Errorf("Expected exactly 1 renewal, got %d", got)
	}
	if got := atomic.LoadInt32(&profileHits); got != 2 {
		t.Errorf("Expected 2 profile attempts, got %d", got)
	}

	// The renewed bearer is written back so the next request skips renewal.
	found := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "bearer" && cookie.Value == "T2" {
			found = true
		}
	}
	if !found {
		t.Error("Renewed bearer should be stored in the cookie")
	}
}

func TestUpdateProfileRejectsInvalidJSON(t *testing.T) {
	h := newHandlers(testConfig("http://backend.invalid"))

	r := httptest.NewRequest(http.MethodPatch, "/api/profile", bytes.NewReader([]byte("{not json")))
	r.AddCookie(&http.Cookie{Name: "bearer", Value: "T1"})
	w := httptest.NewRecorder()
	h.HandleUpdateProfile(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestUpdateProfileRelaysPatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/profile" {
			t.Errorf("Unexpected %s %s", r.Method, r.URL.Path)
		}
		body := make(map[string]string)
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode patch: %v", err)
		}
		if body["first_name"] != "Amelia" {
			t.Errorf("Patch not relayed: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "u1", "first_name": "Amelia"})
	}))
	defer server.Close()

	h := newHandlers(testConfig(server.URL))

	r := httptest.NewRequest(http.MethodPatch, "/api/profile", bytes.NewReader([]byte(`{"first_name":"Amelia"}`)))
	r.AddCookie(&http.Cookie{Name: "bearer", Value: "T1"})
	w := httptest.NewRecorder()
	h.HandleUpdateProfile(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadAvatarStreamsBody(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profile/avatar" || r.Method != http.MethodPut {
			t.Errorf("Unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "image/png" {
			t.Errorf("Content type not preserved: %q", r.Header.Get("Content-Type"))
		}
		body := make([]byte, len(payload))
		if _, err := r.Body.Read(body); err != nil && err.Error() != "EOF" {
			t.Fatalf("Failed to read body: %v", err)
		}
		if !bytes.Equal(body, payload) {
			t.Error("Avatar payload altered in transit")
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "u1", "avatar": "u1.png"})
	}))
	defer server.Close()

	h := newHandlers(testConfig(server.URL))

	r := httptest.NewRequest(http.MethodPut, "/api/profile/avatar", bytes.NewReader(payload))
	r.Header.Set("Content-Type", "image/png")
	r.AddCookie(&http.Cookie{Name: "bearer", Value: "T1"})
	w := httptest.NewRecorder()
	h.HandleUploadAvatar(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
