package chart

import (
	"sort"

	"github.com/samber/lo"
)

// Rank orders services by descending peak single-day cost. Ties go to the
// service listed earlier in explicit (listed before unlisted), then to the
// lexicographically smaller id. Totals over the range are not considered.
func Rank(peaks map[string]float64, explicit []string) []string {
	pos := explicitPositions(explicit)
	ids := lo.Keys(peaks)
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if peaks[a] != peaks[b] {
			return peaks[a] > peaks[b]
		}
		if pa, pb := positionOf(pos, a), positionOf(pos, b); pa != pb {
			return pa < pb
		}
		return a < b
	})
	return ids
}

// TopN splits a ranking into the first n services and the rest.
func TopN(ranking []string, n int) (selected, rest []string) {
	if n < 0 {
		n = 0
	}
	if len(ranking) <= n {
		return ranking, nil
	}
	return ranking[:n], ranking[n:]
}

func explicitPositions(order []string) map[string]int {
	pos := make(map[string]int, len(order))
	for _, id := range order {
		if _, seen := pos[id]; !seen {
			pos[id] = len(pos)
		}
	}
	return pos
}

func positionOf(pos map[string]int, id string) int {
	if p, ok := pos[id]; ok {
		return p
	}
	return len(pos)
}
