package sessions

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// Hasher runs bcrypt under a bounded number of concurrent workers.
type Hasher struct {
	cost  int
	sem   *semaphore.Weighted
	dummy []byte
}

func NewHasher(cost, workers int) *Hasher {
	if workers < 1 {
		workers = 1
	}
	// stands in for the hash of an unknown user
	dummy, _ := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), cost)
	return &Hasher{cost: cost, sem: semaphore.NewWeighted(int64(workers)), dummy: dummy}
}

// Hash returns the bcrypt hash of password. It blocks until a worker is
// free or ctx is done.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether password matches hash. An empty hash is compared
// against a dummy so the caller pays the same price either way.
func (h *Hasher) Compare(ctx context.Context, hash, password string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	target := []byte(hash)
	if hash == "" {
		target = h.dummy
	}

	err := bcrypt.CompareHashAndPassword(target, []byte(password))
	return err == nil && hash != "", nil
}
