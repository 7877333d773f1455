// Package reference generates opaque transaction references.
package reference

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const prefix = "SOTO"

// Generator produces references of the form SOTO + five random digits +
// unix milliseconds. The random digits keep two references generated in
// the same millisecond apart; the store's unique index is still the only
// uniqueness guarantee.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// Generate returns a new reference.
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return fmt.Sprintf("%s%05d%d", prefix, g.rng.Intn(100000), g.now().UnixMilli())
}
