package userauth

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes passwords with bcrypt. A zero Cost uses
// DefaultPasswordCost.
type BcryptHasher struct {
	Cost int
}

var _ PasswordHasher = BcryptHasher{}

// NewBcryptHasher returns a hasher with the given work factor
func NewBcryptHasher(cost int) (BcryptHasher, error) {
	if cost != 0 && (cost < bcrypt.MinCost || cost > bcrypt.MaxCost) {
		return BcryptHasher{}, fmt.Errorf("%w: bcrypt cost must be between %d and %d, got %d",
			ErrConfiguration, bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	return BcryptHasher{Cost: cost}, nil
}

func (h BcryptHasher) cost() int {
	if h.Cost == 0 {
		return DefaultPasswordCost
	}
	return h.Cost
}

// HashPassword will generate a salted password hash
func (h BcryptHasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}

	return string(hash), nil
}

// ComparePassword reports whether password matches hash. A mismatch is not
// an error, a broken hash is.
func (h BcryptHasher) ComparePassword(password, hash string) (bool, error) {
	if err := ComparePasswordAndHash(password, hash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// HashPassword hashes with the default cost
func HashPassword(password string) (string, error) {
	return BcryptHasher{}.HashPassword(password)
}

// ComparePassword checks password against hash with the default hasher
func ComparePassword(password, hash string) (bool, error) {
	return BcryptHasher{}.ComparePassword(password, hash)
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return fmt.Errorf("%w: %w", ErrHashing, err)
	}
	return nil
}

// RandomPasswordHash is a temporary password
func RandomPasswordHash() string {
	pwd := uuid.New()

	h, err := HashPassword(pwd.String())
	if err != nil {
		return RandomPasswordHash()
	}

	return h
}
