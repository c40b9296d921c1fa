package id

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

// Generator hands out request correlation IDs.
type Generator interface {
	NewID() string
}

// RandomGenerator returns 16 hex characters from crypto/rand. If the entropy
// source fails it falls back to a process-local sequence stamped with the
// start time, so an ID is always produced.
type RandomGenerator struct {
	fallback atomic.Uint64
	epoch    string
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{epoch: strconv.FormatInt(time.Now().UnixNano(), 36)}
}

func (g *RandomGenerator) NewID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return g.epoch + "-" + strconv.FormatUint(g.fallback.Add(1), 36)
	}
	return hex.EncodeToString(buf)
}
