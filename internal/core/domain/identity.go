package domain

import (
	"fmt"
	"strings"
)

// Role distinguishes the two kinds of Rently accounts.
type Role string

const (
	RoleLandlord Role = "Landlord"
	RoleTenant   Role = "Tenant"
)

// ParseRole converts user or wire input into a Role, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "landlord":
		return RoleLandlord, nil
	case "tenant":
		return RoleTenant, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q (expected Landlord or Tenant)", ErrValidation, s)
	}
}

// Identity models a registered Rently account.
//
// The same display name may exist once per role (a person can hold both a
// landlord and a tenant account), but never twice within one role.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Secret Secret `json:"-"`
}

// NameMatches reports whether the identity's display name equals name,
// ignoring case and surrounding whitespace.
func (i Identity) NameMatches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(i.Name), strings.TrimSpace(name))
}

// NewIdentity carries the fields required to create an identity. The backing
// directory assigns the id.
type NewIdentity struct {
	Name     string
	Password string
	Role     Role
}
