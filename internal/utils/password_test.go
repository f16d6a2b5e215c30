package utils

import (
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("espresso-42")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "espresso-42" {
		t.Fatal("hash must not equal the plain password")
	}

	if !CheckPasswordHash("espresso-42", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("espresso-43", hash) {
		t.Error("wrong password accepted")
	}
}
