package sampler

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"

	"lukechampine.com/frand"
)

// Source is the random stream threaded through generators and samplers.
// Seeding it once at the start of a run makes the whole run reproducible.
type Source interface {
	// IntN returns a uniform value in [0, n). n must be > 0.
	IntN(n int) int
}

const (
	KindPCG    = "pcg"
	KindChaCha = "chacha"
)

// NewSource builds a seeded source. An empty kind means pcg.
func NewSource(kind string, seed uint64) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindPCG:
		return rand.New(rand.NewPCG(seed, seed)), nil
	case KindChaCha:
		return newChaChaSource(seed), nil
	default:
		return nil, fmt.Errorf("unsupported rng %q (want %s or %s)", kind, KindPCG, KindChaCha)
	}
}

// chachaSource adapts frand's keyed generator to Source.
type chachaSource struct {
	rng *frand.RNG
}

func newChaChaSource(seed uint64) *chachaSource {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, seed)
	return &chachaSource{rng: frand.NewCustom(key, 1024, 12)}
}

func (c *chachaSource) IntN(n int) int { return c.rng.Intn(n) }
