package identity

import (
	"errors"
	"testing"
)

func TestVerifySecretRoundTrip(t *testing.T) {
	hash, err := HashSecret("1234")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if string(hash) == "1234" {
		t.Fatalf("hash must not equal the plaintext")
	}

	ok, err := VerifySecret(hash, "1234")
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = VerifySecret(hash, "4321")
	if err != nil || ok {
		t.Fatalf("expected mismatch, got ok=%v err=%v", ok, err)
	}
}

func TestHashSecretIsSalted(t *testing.T) {
	a, err := HashSecret("1234")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := HashSecret("1234")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if string(a) == string(b) {
		t.Fatalf("expected distinct salted hashes")
	}
}

func TestVerifySecretCorruptedHash(t *testing.T) {
	ok, err := VerifySecret([]byte("not-a-bcrypt-hash"), "1234")
	if ok {
		t.Fatalf("corrupted hash must not verify")
	}
	if !errors.Is(err, ErrVerification) {
		t.Fatalf("expected ErrVerification, got %v", err)
	}
}
