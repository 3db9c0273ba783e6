// Package ids generates and validates the short identifiers carried by
// policies, contracts and appointments.
//
// A Generator only draws random strings; it never checks them against
// existing records. Collision avoidance belongs to the owner of the
// collection (book.Book.GenerateUniquePolicyID and friends).
package ids

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// IDLength is the length of every generated identifier.
const IDLength = 6

// SafeAlphabet holds the characters identifiers are drawn from. Visually
// ambiguous characters (I, O, l) are left out.
const SafeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ" + "abcdefghijkmnopqrstuvwxyz" + "0123456789"

// Pattern is the syntax of a well-formed identifier, shared with the
// entity constructors.
var Pattern = types.IDPattern

// Generator produces random strings of a given length.
type Generator interface {
	// Generate returns length characters drawn uniformly from alphabet.
	// Returns the empty string if length <= 0 or alphabet is empty.
	Generate(length int, alphabet string) string
}

// Random implements Generator on top of a ChaCha8 stream.
type Random struct {
	rng *mrand.Rand
}

// Compile-time interface check.
var _ Generator = (*Random)(nil)

// NewRandom returns a Random seeded from crypto/rand.
func NewRandom() *Random {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms; fall back to
		// the runtime-seeded global source if it ever does.
		binary.LittleEndian.PutUint64(seed[:], mrand.Uint64())
		binary.LittleEndian.PutUint64(seed[8:], mrand.Uint64())
	}
	return &Random{rng: mrand.New(mrand.NewChaCha8(seed))}
}

// NewSeeded returns a Random whose output is fully determined by seed.
func NewSeeded(seed uint64) *Random {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:], seed)
	return &Random{rng: mrand.New(mrand.NewChaCha8(s))}
}

// Generate returns length characters drawn uniformly from alphabet.
func (r *Random) Generate(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(length)
	for range length {
		sb.WriteByte(alphabet[r.rng.IntN(len(alphabet))])
	}
	return sb.String()
}

// New draws one IDLength identifier from SafeAlphabet using g.
func New(g Generator) string {
	return g.Generate(IDLength, SafeAlphabet)
}

// IsValid reports whether s matches pattern. It is a pure syntax check and
// says nothing about whether s is in use.
func IsValid(s string, pattern *regexp.Regexp) bool {
	if pattern == nil {
		return false
	}
	return pattern.MatchString(s)
}

// IsValidID reports whether s is a well-formed identifier.
func IsValidID(s string) bool {
	return IsValid(s, Pattern)
}
