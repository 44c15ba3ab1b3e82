// Package rng provides a Fortuna CSPRNG that is continuously fed from the
// operating system and from scheduler timing, run as the "rng" module.
package rng

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/aead/serpent"
	"github.com/seehuhn/fortuna"

	"github.com/safing/securerandom/config"
	"github.com/safing/securerandom/log"
	"github.com/safing/securerandom/modules"
)

const initialSeedSize = 64

var (
	module *modules.Module

	rng      *fortuna.Generator
	rngLock  sync.Mutex
	rngReady = false

	rngCipherOption    config.StringOption
	minFeedEntropy     config.IntOption
	reseedAfterSeconds config.IntOption
	reseedAfterBytes   config.IntOption
)

func init() {
	module = modules.Register("rng", prep, start, stop)
}

func prep() error {
	err := config.Register(&config.Option{
		Name:            "RNG Cipher",
		Key:             "rng/cipher",
		Description:     "Block cipher used by the Fortuna generator. Requires restart to take effect.",
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		OptType:         config.OptTypeString,
		DefaultValue:    "aes",
		ValidationRegex: "^(aes|serpent)$",
	})
	if err != nil {
		return err
	}
	rngCipherOption = config.Concurrent.GetAsString("rng/cipher", "aes")

	err = config.Register(&config.Option{
		Name:            "Minimum Feed Entropy",
		Key:             "rng/min_feed_entropy",
		Description:     "The minimum amount of entropy before an entropy source is fed to the RNG, in bits.",
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		OptType:         config.OptTypeInt,
		DefaultValue:    256,
		ValidationRegex: "^[0-9]{3,5}$",
	})
	if err != nil {
		return err
	}
	minFeedEntropy = config.Concurrent.GetAsInt("rng/min_feed_entropy", 256)

	err = config.Register(&config.Option{
		Name:            "Reseed after x seconds",
		Key:             "rng/reseed_after_seconds",
		Description:     "Number of seconds until reseed",
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		OptType:         config.OptTypeInt,
		DefaultValue:    360, // six minutes
		ValidationRegex: "^[1-9][0-9]{1,5}$",
	})
	if err != nil {
		return err
	}
	reseedAfterSeconds = config.Concurrent.GetAsInt("rng/reseed_after_seconds", 360)

	err = config.Register(&config.Option{
		Name:            "Reseed after x bytes",
		Key:             "rng/reseed_after_bytes",
		Description:     "Number of fetched bytes until reseed",
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		OptType:         config.OptTypeInt,
		DefaultValue:    1000000, // one megabyte
		ValidationRegex: "^[1-9][0-9]{2,9}$",
	})
	if err != nil {
		return err
	}
	reseedAfterBytes = config.Concurrent.GetAsInt("rng/reseed_after_bytes", 1000000)

	return nil
}

func newCipher(key []byte) (cipher.Block, error) {
	cipherName := rngCipherOption()
	switch cipherName {
	case "aes":
		return aes.NewCipher(key)
	case "serpent":
		return serpent.NewCipher(key)
	default:
		return nil, fmt.Errorf("unknown or unsupported cipher: %s", cipherName)
	}
}

func start() error {
	seed := make([]byte, initialSeedSize)
	if _, err := rand.Read(seed); err != nil {
		return fmt.Errorf("rng: failed to get initial seed: %w", err)
	}

	// check the configured cipher before handing it to fortuna
	if _, err := newCipher(make([]byte, 32)); err != nil {
		return fmt.Errorf("rng: %w", err)
	}

	rngLock.Lock()
	rng = fortuna.NewGenerator(newCipher)
	rng.Reseed(seed)
	rngBytesRead = 0
	rngLastFeed = time.Now()
	rngReady = true
	rngLock.Unlock()
	log.Debugf("rng: fortuna generator started with %s cipher", rngCipherOption())

	// random source: OS
	module.StartWorker("os entropy feeder", osFeeder)

	// random source: goroutine ticks
	module.StartWorker("tick entropy feeder", tickFeeder)

	// full feeder
	module.StartWorker("full feeder", fullFeeder)

	return nil
}

func stop() error {
	rngLock.Lock()
	defer rngLock.Unlock()

	rngReady = false
	return nil
}
