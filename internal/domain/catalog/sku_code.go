package catalog

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/erp/skucatalog/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Segment lengths of a generated code: <CAT2>-<SUB2>-<RAND2>-<BRAND3>
const (
	categorySegment    = 2
	subcategorySegment = 2
	brandSegment       = 3

	// randomSpace is the number of distinct two-digit random components
	randomSpace = 100

	// DefaultCodeAttempts tries every random component once
	DefaultCodeAttempts = randomSpace
)

// RandomSource yields non-negative pseudo-random ints in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// CodeGenerator builds SKU codes from category, subcategory and brand,
// retrying with a fresh random component on collision.
type CodeGenerator struct {
	rng         RandomSource
	maxAttempts int
}

// NewCodeGenerator creates a generator. A nil rng uses the process-wide
// source; maxAttempts < 1 uses DefaultCodeAttempts.
func NewCodeGenerator(rng RandomSource, maxAttempts int) *CodeGenerator {
	if rng == nil {
		rng = globalRandom{}
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultCodeAttempts
	}
	return &CodeGenerator{rng: rng, maxAttempts: maxAttempts}
}

// Generate returns the first candidate code for which taken reports false.
// Random components are drawn without repetition, so with the default bound
// every one of the 100 candidates is tried before GENERATION_EXHAUSTED.
func (g *CodeGenerator) Generate(category, subcategory, brandName string, taken func(code string) bool) (string, error) {
	prefix := CodePrefix(category, subcategory)
	suffix := leading(brandName, brandSegment)

	attempts := g.maxAttempts
	if attempts > randomSpace {
		attempts = randomSpace
	}

	for _, n := range g.permutation()[:attempts] {
		code := fmt.Sprintf("%s-%02d-%s", prefix, n, suffix)
		if !taken(code) {
			return code, nil
		}
	}

	return "", shared.NewDomainError(shared.CodeGenerationExhausted,
		fmt.Sprintf("No free SKU code for %s-NN-%s after %d attempts", prefix, suffix, attempts))
}

// CodePrefix returns the "<CAT2>-<SUB2>" part of a generated code
func CodePrefix(category, subcategory string) string {
	return leading(category, categorySegment) + "-" + leading(subcategory, subcategorySegment)
}

// permutation returns 0..randomSpace-1 in random order (Fisher-Yates)
func (g *CodeGenerator) permutation() []int {
	p := make([]int, randomSpace)
	for i := range p {
		p[i] = i
	}
	for i := len(p) - 1; i > 0; i-- {
		j := g.rng.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// leading upper-cases the first n characters of s; shorter input is used as is
func leading(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) > n {
		runes = runes[:n]
	}
	return cases.Upper(language.Und).String(string(runes))
}
