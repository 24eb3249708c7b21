// Package scramble builds random-move scrambles and loads scramble files.
package scramble

import (
	"math/rand"
	"strings"
	"time"
)

// DefaultLength is the usual move count for a 3x3 random-move scramble.
const DefaultLength = 20

var (
	faces     = []string{"U", "D", "L", "R", "F", "B"}
	modifiers = []string{"", "'", "2"}
)

// axis groups opposite faces; U/D, L/R and F/B share an axis.
func axis(face int) int {
	return face / 2
}

// Generator produces random-move scrambles.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate returns length moves separated by spaces. A face never repeats
// back to back and no axis gets three moves in a row.
func (g *Generator) Generate(length int) string {
	if length <= 0 {
		return ""
	}
	moves := make([]string, 0, length)
	prev, prevPrev := -1, -1
	for len(moves) < length {
		face := g.rnd.Intn(len(faces))
		if face == prev {
			continue
		}
		if prev >= 0 && prevPrev >= 0 && axis(face) == axis(prev) && axis(prev) == axis(prevPrev) {
			continue
		}
		moves = append(moves, faces[face]+modifiers[g.rnd.Intn(len(modifiers))])
		prevPrev, prev = prev, face
	}
	return strings.Join(moves, " ")
}
