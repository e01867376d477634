package engine

import (
	"sort"

	"github.com/vovakirdan/chroma-arcade/internal/color"
	"github.com/vovakirdan/chroma-arcade/internal/round"
)

// Evaluate checks a placement snapshot against the bucket rule.
// It succeeds iff every item sits in its bucket. The returned ids are
// exactly the items whose placed bucket differs from the required one
// (unplaced items included), in ascending order.
func Evaluate(items []round.Item, placements map[round.ItemID]color.Bucket, table color.BucketTable) (bool, []round.ItemID, error) {
	var wrong []round.ItemID
	for _, it := range items {
		want, err := table.Classify(it.Color.Name)
		if err != nil {
			return false, nil, err
		}
		if placements[it.ID] != want {
			wrong = append(wrong, it.ID)
		}
	}
	sort.Slice(wrong, func(i, j int) bool { return wrong[i] < wrong[j] })
	return len(wrong) == 0, wrong, nil
}
