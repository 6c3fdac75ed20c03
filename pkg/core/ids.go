package core

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// IDGenerator produces note identifiers.
// Collisions are not checked by the Store.
type IDGenerator func() string

const (
	shortIDLength   = 8
	shortIDAlphabet = "0123456789abcdefghij"
)

// ShortIDGenerator returns random 8-character lowercase base-20 identifiers ([0-9a-j]).
func ShortIDGenerator() string {
	buf := make([]byte, shortIDLength)
	limit := big.NewInt(int64(len(shortIDAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms.
			panic(err)
		}
		buf[i] = shortIDAlphabet[n.Int64()]
	}
	return string(buf)
}

// UUIDGenerator returns random (version 4) UUID strings.
func UUIDGenerator() string {
	return uuid.NewString()
}
