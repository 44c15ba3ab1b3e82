package generator

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"time"

	"golang.org/x/crypto/chacha20"

	"github.com/safing/securerandom/log"
)

const (
	maxCipherRead     = 4 * 1024 * 1024 // 4 MiB
	maxCipherDuration = 20 * time.Second
)

// keySource provides fresh key material.
var keySource io.Reader = rand.Reader

// nonce is a 12 byte little endian counter used as ChaCha20 nonce.
type nonce [chacha20.NonceSize]byte

func (n *nonce) inc() {
	n0 := binary.LittleEndian.Uint32(n[0:4])
	n1 := binary.LittleEndian.Uint32(n[4:8])
	n2 := binary.LittleEndian.Uint32(n[8:12])

	var carry uint32
	n0, carry = bits.Add32(n0, 1, carry)
	n1, carry = bits.Add32(n1, 0, carry)
	n2, _ = bits.Add32(n2, 0, carry)

	binary.LittleEndian.PutUint32(n[0:4], n0)
	binary.LittleEndian.PutUint32(n[4:8], n1)
	binary.LittleEndian.PutUint32(n[8:12], n2)
}

// ChaCha20 is a userspace stream generator keyed from crypto/rand. It is
// rekeyed after 4 MiB of output or 20 seconds, whichever comes first.
// ChaCha20 is not safe for concurrent use.
type ChaCha20 struct {
	key     [chacha20.KeySize]byte
	nonce   nonce
	cipher  *chacha20.Cipher
	read    int
	expires time.Time
}

// NewChaCha20 returns a ChaCha20 generator. The generator is unsupported if
// the initial key could not be read.
func NewChaCha20() *ChaCha20 {
	c := &ChaCha20{}
	if err := c.seed(); err != nil {
		log.Debugf("generator: chacha20 is unavailable: %s", err)
	}
	return c
}

// seed derives a new key from fresh kernel entropy mixed with the current
// key stream.
func (c *ChaCha20) seed() error {
	_, err := io.ReadFull(keySource, c.key[:])
	if err != nil && c.cipher == nil {
		return fmt.Errorf("%w: failed to key chacha20: %w", ErrGeneration, err)
	}
	if c.cipher != nil {
		c.cipher.XORKeyStream(c.key[:], c.key[:])
	}

	// never errors with correct key and nonce sizes
	cipher, err := chacha20.NewUnauthenticatedCipher(c.key[:], c.nonce[:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	c.cipher = cipher
	c.nonce.inc()
	c.read = 0
	c.expires = time.Now().Add(maxCipherDuration)
	return nil
}

// IsSupported reports whether the generator has been keyed.
func (c *ChaCha20) IsSupported() bool {
	return c.cipher != nil
}

// Bytes returns count bytes of key stream.
func (c *ChaCha20) Bytes(count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative byte count %d", ErrInvalidArgument, count)
	}
	if c.cipher == nil || time.Now().After(c.expires) {
		if err := c.seed(); err != nil {
			return nil, err
		}
	}

	data := make([]byte, count)
	s := data
	for c.read+len(s) > maxCipherRead {
		l := maxCipherRead - c.read
		c.cipher.XORKeyStream(s[:l], s[:l])
		if err := c.seed(); err != nil {
			return nil, err
		}
		s = s[l:]
	}
	c.cipher.XORKeyStream(s, s)
	c.read += len(s)
	return data, nil
}
