package domain

import "golang.org/x/crypto/bcrypt"

// SecretScheme names how a credential is held at rest.
type SecretScheme string

const (
	// SecretPlain holds the credential verbatim. The remote identity
	// service stores and returns plaintext passwords, so identities
	// sourced from it carry this scheme.
	SecretPlain SecretScheme = "plain"
	// SecretBcrypt holds a bcrypt hash. Locally stored identities use it.
	SecretBcrypt SecretScheme = "bcrypt"
)

// Secret is an identity's credential at rest. The scheme decides how a
// presented password is verified, so directories with different storage
// policies can back the same session flow.
type Secret struct {
	Scheme SecretScheme
	Value  string
}

// PlainSecret wraps a plaintext credential.
func PlainSecret(password string) Secret {
	return Secret{Scheme: SecretPlain, Value: password}
}

// BcryptSecret hashes password with bcrypt at the default cost.
func BcryptSecret(password string) (Secret, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Secret{}, err
	}
	return Secret{Scheme: SecretBcrypt, Value: string(hash)}, nil
}

// Matches reports whether the presented password matches the stored
// credential. Comparison is exact: no trimming, case preserved.
func (s Secret) Matches(password string) bool {
	switch s.Scheme {
	case SecretBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(s.Value), []byte(password)) == nil
	case SecretPlain:
		return s.Value == password
	default:
		return false
	}
}
