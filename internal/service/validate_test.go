package service

import "testing"

func TestValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		want  bool
	}{
		{"a@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"user_name%x@example.io", true},
		{"no-at-sign.example.com", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"a@b.c", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := validEmail(tt.email); got != tt.want {
			t.Errorf("validEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes", "Abc12345!", true},
		{"symbol from middle of set", "Xy9{abcd", true},
		{"too short", "Ab1!", false},
		{"no uppercase or symbol", "abc12345", false},
		{"no digit", "Abcdefg!", false},
		{"no symbol", "Abc12345", false},
		{"no lowercase", "ABC12345!", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validPassword(tt.password); got != tt.want {
				t.Errorf("validPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}
