package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are ULIDs: 26 Crockford Base32 characters over a 48-bit millisecond
// timestamp and 80 bits of randomness, so IDs sort by submission time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewID returns a fresh job ID, unique within the process even for
// submissions landing on the same millisecond.
func NewID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], ts<<16)
	rand.Read(b[6:])
	// Sequence in bytes 6-7 keeps same-millisecond IDs distinct.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeCrockford(b)
}

// encodeCrockford packs 128 bits into 26 base32 characters, reading five bits
// per character with a two-bit zero pad at the front.
func encodeCrockford(b [16]byte) string {
	bit := func(i int) byte {
		return (b[i/8] >> (7 - i%8)) & 1
	}
	var out [26]byte
	for c := range out {
		var v byte
		for k := 0; k < 5; k++ {
			v <<= 1
			if i := c*5 + k - 2; i >= 0 {
				v |= bit(i)
			}
		}
		out[c] = crockford[v]
	}
	return string(out[:])
}
