// Package round generates the content of a single timed challenge:
// the items on the board and, for target games, the colour to find.
package round

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/chroma-arcade/internal/color"
)

var (
	ErrEmptyPool    = errors.New("round: color pool is empty")
	ErrInvalidCount = errors.New("round: item count must be at least 1")
	ErrPoolTooSmall = errors.New("round: pool smaller than item count")
	ErrUnknownItem  = errors.New("round: unknown item")
)

// ItemID identifies an item within one round. Items may share a colour,
// so identity is positional rather than by name.
type ItemID int

// Item is one coloured chip or tile.
type Item struct {
	ID    ItemID
	Color color.Color
}

// Round is the generated content of one challenge.
type Round struct {
	Items     []Item
	Target    *color.Color // nil for bucket games
	Deadline  time.Duration
	StartedAt time.Time
}

// Item returns the item with the given id.
func (r Round) Item(id ItemID) (Item, error) {
	if id < 0 || int(id) >= len(r.Items) {
		return Item{}, fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	return r.Items[id], nil
}

// Contains reports whether a colour name appears among the items.
func (r Round) Contains(name string) bool {
	for _, it := range r.Items {
		if it.Color.Name == name {
			return true
		}
	}
	return false
}

// TargetCount returns how many items carry the target colour.
func (r Round) TargetCount() int {
	if r.Target == nil {
		return 0
	}
	n := 0
	for _, it := range r.Items {
		if it.Color.Name == r.Target.Name {
			n++
		}
	}
	return n
}

// Options controls round generation.
type Options struct {
	Count         int  // number of items, >= 1
	Replacement   bool // sample with replacement (colours may repeat)
	RequireTarget bool // pick a target from the generated items
}

// Generator draws rounds from a seeded random source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with its own seeded source.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NewGeneratorFrom wraps an existing random source.
func NewGeneratorFrom(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate builds a new round from pool.
func (g *Generator) Generate(pool color.Palette, opts Options) (Round, error) {
	if pool.Len() == 0 {
		return Round{}, ErrEmptyPool
	}
	if opts.Count < 1 {
		return Round{}, ErrInvalidCount
	}

	var picks []color.Color
	if opts.Replacement {
		picks = g.withReplacement(pool, opts.Count)
	} else {
		if opts.Count > pool.Len() {
			return Round{}, fmt.Errorf("%w: need %d, have %d", ErrPoolTooSmall, opts.Count, pool.Len())
		}
		picks = g.withoutReplacement(pool, opts.Count)
	}

	r := Round{Items: make([]Item, len(picks))}
	for i, c := range picks {
		r.Items[i] = Item{ID: ItemID(i), Color: c}
	}

	if opts.RequireTarget {
		target := g.pickTarget(r.Items)
		r.Target = &target
	}

	return r, nil
}

func (g *Generator) withReplacement(pool color.Palette, n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = pool.At(g.rng.Intn(pool.Len()))
	}
	return out
}

// withoutReplacement runs a partial Fisher-Yates shuffle over the pool.
func (g *Generator) withoutReplacement(pool color.Palette, n int) []color.Color {
	colors := pool.Colors()
	for i := 0; i < n; i++ {
		j := i + g.rng.Intn(len(colors)-i)
		colors[i], colors[j] = colors[j], colors[i]
	}
	return colors[:n]
}

// pickTarget chooses uniformly among the distinct colours present.
func (g *Generator) pickTarget(items []Item) color.Color {
	seen := make(map[string]bool, len(items))
	distinct := make([]color.Color, 0, len(items))
	for _, it := range items {
		if !seen[it.Color.Name] {
			seen[it.Color.Name] = true
			distinct = append(distinct, it.Color)
		}
	}
	return distinct[g.rng.Intn(len(distinct))]
}
