package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"Landlord", RoleLandlord},
		{"landlord", RoleLandlord},
		{" TENANT ", RoleTenant},
		{"Tenant", RoleTenant},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := ParseRole("admin"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}
}

func TestNameMatches(t *testing.T) {
	id := Identity{Name: "Cesar Tirado"}
	if !id.NameMatches("  cesar tirado ") {
		t.Fatalf("expected case-insensitive, trimmed match")
	}
	if id.NameMatches("Cesar") {
		t.Fatalf("partial names must not match")
	}
}

func TestSecretMatches(t *testing.T) {
	plain := PlainSecret("abc123")
	if !plain.Matches("abc123") {
		t.Fatalf("plain secret should match its own value")
	}
	if plain.Matches("ABC123") {
		t.Fatalf("comparison must be case-sensitive")
	}
	if plain.Matches(" abc123") {
		t.Fatalf("comparison must not trim")
	}

	hashed, err := BcryptSecret("hunter2")
	if err != nil {
		t.Fatalf("BcryptSecret: %v", err)
	}
	if hashed.Value == "hunter2" {
		t.Fatalf("bcrypt secret must not hold the plaintext")
	}
	if !hashed.Matches("hunter2") {
		t.Fatalf("bcrypt secret should verify the original password")
	}
	if hashed.Matches("hunter3") {
		t.Fatalf("bcrypt secret must reject a wrong password")
	}

	var empty Secret
	if empty.Matches("") {
		t.Fatalf("a secret with no scheme must never match")
	}
}
