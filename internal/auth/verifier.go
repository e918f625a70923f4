// Package auth decides whether a caller presents the operator's credentials.
package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks a username/password pair.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// staticVerifier accepts exactly one configured account.
type staticVerifier struct {
	username string
	password []byte
	hashed   bool
}

// NewStaticVerifier creates a verifier for a single operator account.
// A password that looks like a bcrypt hash ($2a$, $2b$, $2y$) is compared
// with bcrypt; anything else is compared as plain text in constant time.
func NewStaticVerifier(username, password string) CredentialVerifier {
	return &staticVerifier{
		username: username,
		password: []byte(password),
		hashed:   isBcryptHash(password),
	}
}

// Verify reports whether username and password match the configured account.
func (v *staticVerifier) Verify(username, password string) bool {
	if v.username == "" || len(v.password) == 0 {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1

	var passOK bool
	if v.hashed {
		passOK = bcrypt.CompareHashAndPassword(v.password, []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), v.password) == 1
	}

	return userOK && passOK
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
