// Package noise simulates a channel that flips at most one bit per message.
package noise

import (
	"math/rand"
	"sync"
	"time"

	"github.com/forest33/bitguard/pkg/bits"
)

const (
	DefaultProbability = 0.5
	NoFlip             = -1
)

// Injector flips one uniformly chosen bit with a fixed probability.
type Injector struct {
	src         bits.Source
	probability float64
	mux         sync.Mutex
}

// New creates an injector. A nil source is replaced with a time seeded one.
func New(src bits.Source, probability float64) *Injector {
	if src == nil {
		src = NewSource(0)
	}
	return &Injector{
		src:         src,
		probability: probability,
	}
}

// NewSource returns a math/rand source, seeded with the current time when seed is 0.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (i *Injector) Probability() float64 {
	return i.probability
}

// Inject flips at most one bit anywhere in payload and returns the flipped index or NoFlip.
func (i *Injector) Inject(payload bits.String) (bits.String, int) {
	i.mux.Lock()
	defer i.mux.Unlock()

	if payload.Len() == 0 || i.src.Float64() >= i.probability {
		return payload, NoFlip
	}
	pos := i.src.Intn(payload.Len())
	return payload.Flip(pos), pos
}

// InjectRegion flips at most one bit chosen among region indexes.
func (i *Injector) InjectRegion(payload bits.String, region []int) (bits.String, int) {
	i.mux.Lock()
	defer i.mux.Unlock()

	if len(region) == 0 || i.src.Float64() >= i.probability {
		return payload, NoFlip
	}
	pos := region[i.src.Intn(len(region))]
	return payload.Flip(pos), pos
}
