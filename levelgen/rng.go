package levelgen

import (
	"log"
	"math/rand"
)

// RNG is the only source of randomness the generator draws from.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// NewRNG returns a seeded RNG. Equal seeds give equal level sequences.
func NewRNG(seed int64) RNG {
	return rand.New(rand.NewSource(seed))
}

// Logf is used for every warning the generator emits.
var Logf = log.Printf
