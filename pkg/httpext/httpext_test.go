package httpext

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestJsonError(t *testing.T) {
	w := httptest.NewRecorder()
	JsonError(w, "authentication required", 401)

	if w.Code != 401 {
		t.Errorf("Expected 401, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if resp.Error != "authentication required" {
		t.Errorf("Unexpected message %q", resp.Error)
	}
	if resp.Code != "" {
		t.Errorf("Code should be omitted, got %q", resp.Code)
	}
}

func TestJsonErrorWithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	JsonErrorWithDetails(w, 429, ErrorResponse{
		Error:      "too many attempts",
		Code:       "rate-limited",
		RetryAfter: "60",
	})

	if w.Code != 429 {
		t.Errorf("Expected 429, got %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if resp.Code != "rate-limited" || resp.RetryAfter != "60" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestJson(t *testing.T) {
	w := httptest.NewRecorder()
	Json(w, 201, map[string]string{"status": "pending_activation"})

	if w.Code != 201 {
		t.Errorf("Expected 201, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if resp["status"] != "pending_activation" {
		t.Errorf("Unexpected body: %v", resp)
	}
}
