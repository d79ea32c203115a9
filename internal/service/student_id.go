package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// studentIDMaxAttempts bounds the allocate-insert-retry loop. Collisions are
// vanishingly rare while the 10M keyspace per year has room, so hitting the
// cap means something is wrong with the store and we fail loudly instead of
// spinning.
const studentIDMaxAttempts = 16

var studentIDRandomSpace = big.NewInt(10_000_000)

// newStudentID returns a candidate public student identifier: the two-digit
// year suffix followed by a 7-digit zero-padded random number, e.g.
// "260421937". Uniqueness is enforced by the store's unique index at insert
// time, not here.
func newStudentID(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, studentIDRandomSpace)
	if err != nil {
		return "", fmt.Errorf("failed to draw student id: %w", err)
	}

	return fmt.Sprintf("%02d%07d", now.Year()%100, n.Int64()), nil
}
