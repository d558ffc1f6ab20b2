// Package localid generates identifiers for locally created users.
// All randomness comes from crypto/rand.
package localid

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/zarlcorp/zdir/internal/user"
)

// randSpace is the size of the random suffix space per millisecond.
const randSpace = 1_000_000

// Generator produces ids of the form local-<unix-ms>-<6 random digits>.
// The prefix keeps local ids disjoint from the remote API's integer ids,
// and a per-millisecond dedup set keeps ids issued within the same clock
// tick distinct, so every id generated in a process is unique.
type Generator struct {
	mu     sync.Mutex
	lastMs int64
	issued map[string]struct{}
}

// New creates a generator.
func New() *Generator {
	return &Generator{issued: make(map[string]struct{})}
}

// Next returns a fresh local id. It cannot fail.
func (g *Generator) Next() user.ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := time.Now().UnixMilli()
	if ms != g.lastMs {
		g.lastMs = ms
		clear(g.issued)
	}

	for {
		id := fmt.Sprintf("%s%d-%06d", user.LocalIDPrefix, ms, randIntn(randSpace))
		if _, dup := g.issued[id]; !dup {
			g.issued[id] = struct{}{}
			return user.ID(id)
		}
	}
}

// randIntn returns a cryptographically random int in [0, n).
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
