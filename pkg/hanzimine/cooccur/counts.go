package cooccur

import (
	"fmt"

	"github.com/cognicore/hanzimine/pkg/hanzimine/internalerr"
)

// Pair is a co-occurring token pair. Under PairingFirstSeen, A is the token
// seen first in the document; under PairingSymmetric, A < B.
type Pair struct {
	A, B string
}

// Pairing selects how a document's local counts turn into pair counts.
type Pairing int

const (
	// PairingFirstSeen adds count(B) to (A, B) for every pair of distinct
	// tokens, A seen before B in the document.
	PairingFirstSeen Pairing = iota
	// PairingSymmetric adds count(A)*count(B) to the sorted pair.
	PairingSymmetric
)

func (p Pairing) String() string {
	switch p {
	case PairingFirstSeen:
		return "first-seen"
	case PairingSymmetric:
		return "symmetric"
	}
	return fmt.Sprintf("Pairing(%d)", int(p))
}

// ParsePairing maps "first-seen" or "symmetric" to a Pairing.
func ParsePairing(s string) (Pairing, error) {
	switch s {
	case "", "first-seen":
		return PairingFirstSeen, nil
	case "symmetric":
		return PairingSymmetric, nil
	}
	return 0, fmt.Errorf("%w: unknown pairing %q", internalerr.ErrInvalidInput, s)
}

// LocalCount counts tokens within one document, remembering the order in
// which each token was first seen.
type LocalCount struct {
	order  []string
	counts map[string]int64
}

// NewLocalCount creates an empty local count.
func NewLocalCount() *LocalCount {
	return &LocalCount{counts: make(map[string]int64)}
}

// Add counts every token in tokens.
func (l *LocalCount) Add(tokens []string) {
	for _, t := range tokens {
		if _, ok := l.counts[t]; !ok {
			l.order = append(l.order, t)
		}
		l.counts[t]++
	}
}

// Keys returns the distinct tokens in first-seen order.
func (l *LocalCount) Keys() []string {
	return l.order
}

// Get returns the local count of t.
func (l *LocalCount) Get(t string) int64 {
	return l.counts[t]
}

// Counter accumulates pair counts across documents.
type Counter struct {
	Pairing Pairing
	Nxy     map[Pair]int64
}

// NewCounter creates an empty counter.
func NewCounter(p Pairing) *Counter {
	return &Counter{Pairing: p, Nxy: make(map[Pair]int64)}
}

// AddDocument adds the pairs of one document's local count.
func (c *Counter) AddDocument(local *LocalCount) {
	keys := local.Keys()
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			a, b := keys[i], keys[j]
			switch c.Pairing {
			case PairingSymmetric:
				if a > b {
					a, b = b, a
				}
				c.Nxy[Pair{A: a, B: b}] += local.Get(a) * local.Get(b)
			default:
				c.Nxy[Pair{A: a, B: b}] += local.Get(b)
			}
		}
	}
}

// GetPairCount returns the accumulated count of (a, b). Under
// PairingSymmetric the order of a and b does not matter.
func (c *Counter) GetPairCount(a, b string) int64 {
	if c.Pairing == PairingSymmetric && a > b {
		a, b = b, a
	}
	return c.Nxy[Pair{A: a, B: b}]
}

// UniquePairs returns the number of distinct pairs.
func (c *Counter) UniquePairs() int {
	return len(c.Nxy)
}
