// Package hash wraps bcrypt for account passwords.
package hash

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var cost = bcrypt.DefaultCost

// SetCost changes the bcrypt work factor; tests lower it to MinCost.
func SetCost(c int) {
	cost = c
	dummyOnce = sync.Once{}
}

func HashPassword(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// Dummy returns a valid hash that matches no real password. Comparing against
// it keeps unknown-email logins as slow as wrong-password ones.
func Dummy() string {
	dummyOnce.Do(func() {
		dummyHash, _ = HashPassword("dummy-password-never-matches")
	})
	return dummyHash
}
