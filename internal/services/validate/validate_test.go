package validate

import (
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.com", true},
		{"pilot@example.aero", true},
		{"", false},
		{"not-an-email", false},
		{"@missing-local.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := Email(tt.email)
			if tt.valid && err != nil {
				t.Errorf("Expected %q valid, got %v", tt.email, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("Expected %q invalid", tt.email)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all character classes", "Aa1!aaaa", true},
		{"longer passphrase", "Tango-Charlie-99", true},
		{"too short", "Aa1!a", false},
		{"no upper case", "aa1!aaaa", false},
		{"no lower case", "AA1!AAAA", false},
		{"no digit", "Aa!!aaaa", false},
		{"no symbol", "Aa1aaaaa", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			if tt.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Expected invalid")
			}
		})
	}
}

func TestUsername(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"pilot99", true},
		{"abc", true},
		{"x", false},
		{"", false},
		{"has space", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			err := Username(tt.username)
			if tt.valid && err != nil {
				t.Errorf("Expected %q valid, got %v", tt.username, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("Expected %q invalid", tt.username)
			}
		})
	}
}

func TestCredentials(t *testing.T) {
	if err := Credentials("a@b.com", "anything"); err != nil {
		t.Errorf("Sign-in only requires a present password, got %v", err)
	}
	if err := Credentials("a@b.com", ""); err == nil {
		t.Error("Empty password must be rejected")
	}
	if err := Credentials("bad", "anything"); err == nil {
		t.Error("Bad email must be rejected")
	}
}
