package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash must not equal plaintext")
	}

	if err := ComparePassword(hash, "s3cret"); err != nil {
		t.Fatalf("ComparePassword rejected correct password: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatalf("ComparePassword accepted wrong password")
	}
}

func TestHashPassword_DefaultCost(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret", 0)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("cost mismatch: got %d want %d", cost, bcrypt.DefaultCost)
	}
}
