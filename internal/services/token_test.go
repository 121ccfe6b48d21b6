package services

import (
	"testing"
	"time"
)

func newTestTokenManager(t *testing.T, secret, algorithm string, ttl time.Duration) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(secret, algorithm, ttl)
	if err != nil {
		t.Fatalf("NewTokenManager returned error: %v", err)
	}
	return tm
}

func TestTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager(t, "test-secret", "HS256", time.Minute)

	token, expiresIn, err := tm.Issue("a@x.com", "user")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresIn != 60 {
		t.Fatalf("expiresIn = %d, want 60", expiresIn)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Subject != "a@x.com" {
		t.Fatalf("subject = %q, want %q", claims.Subject, "a@x.com")
	}
	if claims.Role != "user" {
		t.Fatalf("role = %q, want %q", claims.Role, "user")
	}
}

func TestTokenExpired(t *testing.T) {
	tm := newTestTokenManager(t, "test-secret", "HS256", -time.Minute)

	token, _, err := tm.Issue("a@x.com", "user")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := tm.Verify(token); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := newTestTokenManager(t, "secret-one", "HS256", time.Minute)
	verifier := newTestTokenManager(t, "secret-two", "HS256", time.Minute)

	token, _, err := issuer.Issue("a@x.com", "user")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected token signed with another secret to fail")
	}
}

func TestTokenAlgorithmMismatch(t *testing.T) {
	issuer := newTestTokenManager(t, "test-secret", "HS512", time.Minute)
	verifier := newTestTokenManager(t, "test-secret", "HS256", time.Minute)

	token, _, err := issuer.Issue("a@x.com", "user")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected token with unexpected algorithm to fail")
	}
}

func TestTokenMissingSubject(t *testing.T) {
	tm := newTestTokenManager(t, "test-secret", "HS256", time.Minute)

	token, _, err := tm.Issue("", "user")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := tm.Verify(token); err == nil {
		t.Fatal("expected token without subject to fail verification")
	}
}

func TestTokenMalformed(t *testing.T) {
	tm := newTestTokenManager(t, "test-secret", "HS256", time.Minute)

	if _, err := tm.Verify("not.a.jwt"); err == nil {
		t.Fatal("expected malformed token to fail verification")
	}
}

func TestNewTokenManagerRejectsBadAlgorithms(t *testing.T) {
	if _, err := NewTokenManager("secret", "nonsense", time.Minute); err == nil {
		t.Fatal("expected unknown algorithm to be rejected")
	}
	if _, err := NewTokenManager("secret", "RS256", time.Minute); err == nil {
		t.Fatal("expected non-HMAC algorithm to be rejected")
	}
}
