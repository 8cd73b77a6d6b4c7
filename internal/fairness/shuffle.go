package fairness

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"

	"github.com/fairdeck/gtoadvisor/poker"
)

// ShuffledOrder derives the deterministic deck order for a seed pair.
// The server seed keys an HMAC-SHA256 stream over the client seed and a
// block counter; the stream drives an unbiased Fisher-Yates shuffle.
func ShuffledOrder(serverSeed, clientSeed string) []poker.Card {
	stream := newSeedStream(serverSeed, clientSeed)
	order := poker.AllCards()
	for i := len(order) - 1; i > 0; i-- {
		j := stream.uintn(uint32(i + 1))
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// seedStream expands the seed material into an unbounded sequence of
// uniform uint32 values, 8 per HMAC block.
type seedStream struct {
	key     []byte
	msg     []byte
	counter uint64
	block   [sha256.Size]byte
	off     int
}

func newSeedStream(serverSeed, clientSeed string) *seedStream {
	return &seedStream{
		key: []byte(serverSeed),
		msg: []byte(clientSeed),
		off: sha256.Size,
	}
}

func (s *seedStream) next32() uint32 {
	if s.off >= sha256.Size {
		mac := hmac.New(sha256.New, s.key)
		mac.Write(s.msg)
		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], s.counter)
		mac.Write(ctr[:])
		mac.Sum(s.block[:0])
		s.counter++
		s.off = 0
	}
	v := binary.BigEndian.Uint32(s.block[s.off:])
	s.off += 4
	return v
}

// uintn returns a uniform value in [0, n) using rejection sampling, so
// indices near 52 carry no modulo bias.
func (s *seedStream) uintn(n uint32) uint32 {
	// Largest multiple of n that fits in 32 bits; draws at or above it
	// are redrawn.
	limit := (uint64(1) << 32) - (uint64(1)<<32)%uint64(n)
	for {
		if v := uint64(s.next32()); v < limit {
			return uint32(v % uint64(n))
		}
	}
}
