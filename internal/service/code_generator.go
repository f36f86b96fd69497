package service

import (
	crand "crypto/rand"
	"math/rand/v2"
	"strings"
	"sync"
)

const (
	codeAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultCodeLength = 6
)

// CodeGenerator draws candidate voucher codes of the form ACRONYM-XXXXXX.
// It holds no state besides its random source, which is safe to share
// between goroutines.
type CodeGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewCodeGenerator wraps rnd. Pass a seeded source for reproducible codes.
func NewCodeGenerator(rnd *rand.Rand) *CodeGenerator {
	return &CodeGenerator{rnd: rnd}
}

// NewSecureRand returns a ChaCha8 source seeded from crypto/rand.
func NewSecureRand() *rand.Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}

// Generate returns acronym + "-" + length characters drawn uniformly, with
// replacement, from [A-Z0-9]. acronym must be non-empty and uppercase.
func (g *CodeGenerator) Generate(acronym string, length int) string {
	if length <= 0 {
		length = DefaultCodeLength
	}

	var b strings.Builder
	b.Grow(len(acronym) + 1 + length)
	b.WriteString(acronym)
	b.WriteByte('-')

	g.mu.Lock()
	for i := 0; i < length; i++ {
		b.WriteByte(codeAlphabet[g.rnd.IntN(len(codeAlphabet))])
	}
	g.mu.Unlock()

	return b.String()
}
