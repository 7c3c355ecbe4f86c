package game

import (
	"crypto/rand"
	"math/big"
)

// secureRandInt returns a cryptographically secure random int64 in [0, max)
func secureRandInt(max int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return n.Int64()
}

// secureRandFloat returns a cryptographically secure random float64 in [0.0, 1.0)
func secureRandFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(1<<53))
	return float64(n.Int64()) / float64(1<<53)
}
