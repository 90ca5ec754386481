package service

import (
	"sync"
	"time"

	"foolivery/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier hashes and checks credentials with bcrypt
type PasswordVerifier struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewPasswordVerifier creates a verifier; costs outside bcrypt's range fall back to the default
func NewPasswordVerifier(cost int) *PasswordVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordVerifier{cost: cost}
}

// Hash returns a salted bcrypt hash of plaintext
func (p *PasswordVerifier) Hash(plaintext string) (string, error) {
	start := time.Now()
	defer func() {
		util.PasswordHashLatency.Observe(time.Since(start).Seconds())
	}()

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches storedHash
func (p *PasswordVerifier) Verify(plaintext, storedHash string) bool {
	start := time.Now()
	defer func() {
		util.PasswordHashLatency.Observe(time.Since(start).Seconds())
	}()

	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

// burn spends the same work as a real Verify so unknown usernames
// cannot be told apart from wrong passwords by response time.
func (p *PasswordVerifier) burn(plaintext string) {
	p.dummyOnce.Do(func() {
		p.dummy, _ = bcrypt.GenerateFromPassword([]byte("foolivery-dummy-password"), p.cost)
	})
	_ = bcrypt.CompareHashAndPassword(p.dummy, []byte(plaintext))
}
