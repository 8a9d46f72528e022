package auth

import "golang.org/x/crypto/bcrypt"

// Hasher is the one-way password hash primitive consumed by the auth facade.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// BcryptHasher implements Hasher with bcrypt at a configured cost.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher builds a hasher, falling back to the library default cost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

// Hash hashes a plaintext password with the configured cost.
func (h BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify checks a password against its hashed value.
func (h BcryptHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
