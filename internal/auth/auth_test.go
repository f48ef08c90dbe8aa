package auth

import (
	"testing"
	"time"
)

var secret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	tok, err := CreateAccessToken(secret, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	claims, err := ParseValidate(secret, tok)
	if err != nil {
		t.Fatalf("ParseValidate: %v", err)
	}
	if claims.Sub != "user-1" {
		t.Errorf("Sub = %q, want user-1", claims.Sub)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tok, err := CreateAccessToken(secret, "user-1", -time.Minute)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if _, err := ParseValidate(secret, tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	tok, err := CreateAccessToken(secret, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if _, err := ParseValidate([]byte("other-secret"), tok); err == nil {
		t.Fatal("expected error for wrong signing secret")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ParseValidate(secret, tok); err == nil {
			t.Errorf("ParseValidate(%q) accepted garbage", tok)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword("hunter2", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("hunter3", hash) {
		t.Error("wrong password accepted")
	}
}
