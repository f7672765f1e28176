package services

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

const (
	trackingAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	trackingSuffixLength = 9
)

// TrackingNumberGenerator builds tracking numbers from the current time and a
// random suffix. Uniqueness is probabilistic; callers may retry on collision.
//
// Example usage:
//
//	gen := services.NewTrackingNumberGenerator()
//	tn, err := gen.Generate()
//	// tn.String() == "TRACK-1767261600000-7QX2M0ZKA"
type TrackingNumberGenerator struct {
	now    func() time.Time
	random io.Reader
}

// NewTrackingNumberGenerator returns a generator backed by the wall clock and
// crypto/rand.
func NewTrackingNumberGenerator() TrackingNumberGenerator {
	return TrackingNumberGenerator{now: time.Now, random: rand.Reader}
}

// NewTrackingNumberGeneratorWith is used by tests to pin the clock and entropy.
func NewTrackingNumberGeneratorWith(now func() time.Time, random io.Reader) TrackingNumberGenerator {
	return TrackingNumberGenerator{now: now, random: random}
}

// Generate returns a new tracking number. It fails only when the entropy
// source does.
func (g TrackingNumberGenerator) Generate() (kernel.TrackingNumber, error) {
	suffix := make([]byte, trackingSuffixLength)
	limit := big.NewInt(int64(len(trackingAlphabet)))
	for i := range suffix {
		n, err := rand.Int(g.random, limit)
		if err != nil {
			return kernel.TrackingNumber{}, fmt.Errorf("generate tracking number: %w", err)
		}
		suffix[i] = trackingAlphabet[n.Int64()]
	}

	return kernel.NewTrackingNumber(fmt.Sprintf("TRACK-%d-%s", g.now().UnixMilli(), suffix))
}
