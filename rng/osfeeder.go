package rng

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/safing/securerandom/log"
)

func osFeeder(ctx context.Context) error {
	feeder := NewFeeder()
	defer feeder.CloseFeeder()

	for {
		// get feed entropy
		minEntropyBytes := int(minFeedEntropy())/8 + 1
		if minEntropyBytes < 32 {
			minEntropyBytes = 64
		}

		// get entropy
		osEntropy := make([]byte, minEntropyBytes)
		n, err := rand.Read(osEntropy)
		switch {
		case err != nil:
			log.Errorf("rng: could not read entropy from os: %s", err)
		case n != minEntropyBytes:
			log.Errorf("rng: could not read enough entropy from os: got only %d bytes instead of %d", n, minEntropyBytes)
		default:
			// feed
			feeder.SupplyEntropy(osEntropy, minEntropyBytes*8)
			if ctx.Err() != nil {
				return nil
			}
			continue
		}

		select {
		case <-time.After(10 * time.Second):
		case <-ctx.Done():
			return nil
		}
	}
}
