package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is compared against when a username does not exist, so that a
// failed login takes the same time whether the username or the password
// was wrong.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("riskledger-dummy"), bcrypt.DefaultCost)

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a bcrypt hash.
// bcrypt's comparison is constant-time over the hash contents.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPasswordCheck performs a bcrypt comparison against a throwaway hash.
// Called on the unknown-username path to keep login timing uniform.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
