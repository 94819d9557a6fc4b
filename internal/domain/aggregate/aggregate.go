package aggregate

import (
	"sort"

	"github.com/forPelevin/prclips/internal/domain/classify"
	"github.com/forPelevin/prclips/internal/domain/timecode"
	"github.com/forPelevin/prclips/internal/types"
)

type key struct {
	name   string
	source types.Source
	id     string
	typ    types.MediaType
}

// Aggregate groups occurrences by classified (name, source, id, type) and
// collects their timecode ranges. Records keep first-seen order; ranges keep
// input order.
func Aggregate(occs []types.ClipOccurrence, conv timecode.Converter) []types.ClipRecord {
	index := make(map[key]int, len(occs))
	var out []types.ClipRecord
	for _, o := range occs {
		if o.MediaPath == "" {
			continue
		}
		cc := classify.Classify(o.MediaPath, o.Name)
		k := key{name: cc.Name, source: cc.Source, id: cc.ID, typ: cc.Type}
		rng := conv.Range(o.In, o.Out)

		i, ok := index[k]
		if !ok {
			index[k] = len(out)
			out = append(out, types.ClipRecord{
				Name:      cc.Name,
				Type:      cc.Type,
				Source:    cc.Source,
				ID:        cc.ID,
				Timecodes: []string{rng},
			})
			continue
		}
		out[i].Timecodes = append(out[i].Timecodes, rng)
	}
	return out
}

// SortByEarliest orders records by their first range. Timecodes compare
// lexicographically, which matches chronological order below 24h.
func SortByEarliest(recs []types.ClipRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return earliest(recs[i]) < earliest(recs[j])
	})
}

func earliest(r types.ClipRecord) string {
	if len(r.Timecodes) == 0 {
		return ""
	}
	first := r.Timecodes[0]
	for _, tc := range r.Timecodes[1:] {
		if tc < first {
			first = tc
		}
	}
	return first
}
