package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "secret123" {
		t.Fatal("HashPassword() returned the plaintext password")
	}

	if !CheckPassword("secret123", hash) {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword("wrong", hash) {
		t.Error("CheckPassword() accepted a wrong password")
	}
	if CheckPassword("secret123", "not-a-hash") {
		t.Error("CheckPassword() accepted a malformed hash")
	}
}
