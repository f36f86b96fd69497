package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// HashPasscode hashes a plaintext admin or attendant passcode with bcrypt.
func HashPasscode(passcode string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(passcode), bcryptCost)
	return string(bytes), err
}

// CheckPasscode compares a plaintext passcode against a bcrypt hash.
func CheckPasscode(passcode, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}
