package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a plain password at the given cost.  The
// service has no user table; this is what an operator runs to produce
// the ADMIN_PASSWORD_HASH value, and what tests use to fabricate one.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the configured admin
// hash in constant time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
