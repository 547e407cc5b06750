package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "hunter2") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "hunter3") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	hash, err := HashPassword("hunter2", 99) // above bcrypt.MaxCost
	if err != nil {
		t.Fatalf("out-of-range cost should fall back to default, got: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want bcrypt.DefaultCost (%d)", cost, bcrypt.DefaultCost)
	}
}
