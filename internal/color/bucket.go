package color

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnclassified is returned when a colour name has no bucket.
var ErrUnclassified = errors.New("color: color has no bucket")

// Bucket is a semantic classification label.
type Bucket string

const (
	BucketNone Bucket = ""
	BucketWarm Bucket = "warm"
	BucketCool Bucket = "cool"
)

// String returns a display name for the bucket.
func (b Bucket) String() string {
	switch b {
	case BucketWarm:
		return "Warm"
	case BucketCool:
		return "Cool"
	case BucketNone:
		return "-"
	default:
		return string(b)
	}
}

// Valid reports whether b is a real (non-empty) bucket.
func (b Bucket) Valid() bool {
	return b == BucketWarm || b == BucketCool
}

// ParseBucket converts a string to a Bucket.
func ParseBucket(s string) (Bucket, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warm", "w":
		return BucketWarm, true
	case "cool", "c":
		return BucketCool, true
	default:
		return BucketNone, false
	}
}

// BucketTable maps colour names to their bucket.
type BucketTable map[string]Bucket

// NewBucketTable builds a table from membership sets.
// A name listed in more than one set is a content error.
func NewBucketTable(sets map[Bucket][]string) (BucketTable, error) {
	t := make(BucketTable)
	for b, names := range sets {
		if !b.Valid() {
			return nil, fmt.Errorf("color: invalid bucket %q", string(b))
		}
		for _, n := range names {
			if prev, ok := t[n]; ok && prev != b {
				return nil, fmt.Errorf("color: %q is both %s and %s", n, prev, b)
			}
			t[n] = b
		}
	}
	return t, nil
}

// Classify returns the bucket of a colour name.
func (t BucketTable) Classify(name string) (Bucket, error) {
	b, ok := t[name]
	if !ok {
		return BucketNone, fmt.Errorf("%w: %q", ErrUnclassified, name)
	}
	return b, nil
}

// Validate checks that every palette colour belongs to a bucket.
func (t BucketTable) Validate(p Palette) error {
	var missing []string
	for _, c := range p.colors {
		if _, ok := t[c.Name]; !ok {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrUnclassified, strings.Join(missing, ", "))
	}
	return nil
}
