package utils

import (
    "testing"

    "golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
    hash, err := HashPassword("s3cret", bcrypt.MinCost)
    if err != nil {
        t.Fatalf("HashPassword() = %v", err)
    }
    if hash == "s3cret" {
        t.Fatal("hash equals the plain password")
    }
    if !VerifyPassword(hash, "s3cret") {
        t.Error("VerifyPassword() rejected the correct password")
    }
    if VerifyPassword(hash, "wrong") {
        t.Error("VerifyPassword() accepted a wrong password")
    }
}

func TestHashPasswordClampsCost(t *testing.T) {
    // Out-of-range costs fall back to the bcrypt default instead of
    // failing registration.
    hash, err := HashPassword("s3cret", 99)
    if err != nil {
        t.Fatalf("HashPassword() = %v", err)
    }
    cost, err := bcrypt.Cost([]byte(hash))
    if err != nil {
        t.Fatalf("Cost() = %v", err)
    }
    if cost != bcrypt.DefaultCost {
        t.Errorf("cost = %d, want %d", cost, bcrypt.DefaultCost)
    }
}
