package security

import (
	"errors"
	"testing"
	"time"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	accountID := "acct-123"

	tok, err := GenerateSessionToken(secret, accountID, time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	got, err := ParseSessionToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseSessionToken error: %v", err)
	}
	if got != accountID {
		t.Fatalf("account id mismatch: got %q want %q", got, accountID)
	}
}

func TestParseSessionToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken("secret", "acct-1", -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	_, err = ParseSessionToken(tok, "secret")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken("right-secret", "acct-2", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	_, err = ParseSessionToken(tok, "wrong-secret")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestParseSessionToken_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseSessionToken("not.a.jwt", "k"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
