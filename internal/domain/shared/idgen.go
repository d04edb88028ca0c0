package shared

import (
	"strings"

	"github.com/google/uuid"
)

// Identifier prefixes for generated records
const (
	PrefixBranch  = "branch"
	PrefixSKU     = "sku"
	PrefixBarcode = "barcode"
	PrefixQR      = "qr"
)

// suffixLength is the number of hex characters kept from a random UUID
const suffixLength = 8

// IDGenerator produces opaque identifiers of the form "<prefix>-<suffix>"
type IDGenerator interface {
	Next(prefix string) string
}

// IDReserver is implemented by generators that can be told about ids
// assigned elsewhere, so they never hand them out again. Issued reports
// whether an id was ever handed out or reserved, including ids of deleted records.
type IDReserver interface {
	Reserve(id string)
	Issued(id string) bool
}

// RandomIDGenerator draws suffixes from random (v4) UUIDs.
// It remembers every id it has handed out, so an id is never issued twice
// within one generator's lifetime, even after the record it named is deleted.
type RandomIDGenerator struct {
	issued map[string]struct{}
	source func() string
}

// NewRandomIDGenerator creates an identifier generator backed by uuid.NewString
func NewRandomIDGenerator() *RandomIDGenerator {
	return &RandomIDGenerator{
		issued: make(map[string]struct{}),
		source: uuid.NewString,
	}
}

// Next returns a fresh identifier with the given prefix
func (g *RandomIDGenerator) Next(prefix string) string {
	for {
		raw := strings.ReplaceAll(g.source(), "-", "")
		id := prefix + "-" + raw[:suffixLength]
		if _, taken := g.issued[id]; taken {
			// Short suffix collided; widen to the full UUID, which is unique in practice.
			id = prefix + "-" + raw
			if _, taken := g.issued[id]; taken {
				continue
			}
		}
		g.issued[id] = struct{}{}
		return id
	}
}

// Reserve marks an externally supplied id (e.g. from seed data) as issued
func (g *RandomIDGenerator) Reserve(id string) {
	g.issued[id] = struct{}{}
}

// Issued reports whether the id was generated or reserved before
func (g *RandomIDGenerator) Issued(id string) bool {
	_, ok := g.issued[id]
	return ok
}

var (
	_ IDGenerator = (*RandomIDGenerator)(nil)
	_ IDReserver  = (*RandomIDGenerator)(nil)
)
