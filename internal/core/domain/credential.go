package domain

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialKind distinguishes how a stored password is represented.
type CredentialKind int

const (
	// CredentialHashed is a bcrypt hash.
	CredentialHashed CredentialKind = iota
	// CredentialLegacyPlaintext is a password stored verbatim by older
	// deployments. It is upgraded to CredentialHashed on the next login.
	CredentialLegacyPlaintext
)

func (k CredentialKind) String() string {
	switch k {
	case CredentialHashed:
		return "hashed"
	case CredentialLegacyPlaintext:
		return "legacy_plaintext"
	default:
		return "unknown"
	}
}

// Credential is the stored secret of a user account.
type Credential struct {
	kind  CredentialKind
	value string
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// CheckPasswordLength rejects passwords bcrypt cannot hash. The limit is in
// bytes, so multi-byte characters count more than once.
func CheckPasswordLength(password string) error {
	if len(password) > MaxPasswordBytes {
		return NewValidationError("password", "Password must be at most 72 bytes")
	}
	return nil
}

// HashPassword returns a bcrypt credential for the given password.
func HashPassword(password string) (Credential, error) {
	if err := CheckPasswordLength(password); err != nil {
		return Credential{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, err
	}
	return Credential{kind: CredentialHashed, value: string(hash)}, nil
}

// ParseCredential classifies a value read from the store. Anything that is
// not a well-formed bcrypt hash is treated as a legacy plaintext password.
func ParseCredential(stored string) Credential {
	if _, err := bcrypt.Cost([]byte(stored)); err == nil {
		return Credential{kind: CredentialHashed, value: stored}
	}
	return Credential{kind: CredentialLegacyPlaintext, value: stored}
}

func (c Credential) Kind() CredentialKind { return c.kind }

func (c Credential) IsLegacy() bool { return c.kind == CredentialLegacyPlaintext }

// Stored returns the representation persisted in the credential store.
func (c Credential) Stored() string { return c.value }

// Matches reports whether password verifies against the credential.
func (c Credential) Matches(password string) bool {
	if c.value == "" {
		return false
	}
	switch c.kind {
	case CredentialHashed:
		return bcrypt.CompareHashAndPassword([]byte(c.value), []byte(password)) == nil
	case CredentialLegacyPlaintext:
		return subtle.ConstantTimeCompare([]byte(c.value), []byte(password)) == 1
	default:
		return false
	}
}
