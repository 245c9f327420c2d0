package report

import "sort"

// DistItem is one entry of a ranked frequency distribution.
type DistItem struct {
	Key   string
	Count int
	Ratio float64
}

// BuildDistribution counts occurrences of each label and returns them sorted
// by count descending. Ties keep first-encountered order (stable sort over
// insertion order). Ratio is count over max(1, len(items)), so empty input
// yields an empty result rather than a division error.
func BuildDistribution(items []string) []DistItem {
	counts := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, k := range items {
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	total := len(items)
	if total == 0 {
		total = 1
	}

	dist := make([]DistItem, 0, len(order))
	for _, k := range order {
		dist = append(dist, DistItem{
			Key:   k,
			Count: counts[k],
			Ratio: float64(counts[k]) / float64(total),
		})
	}
	sort.SliceStable(dist, func(i, j int) bool {
		return dist[i].Count > dist[j].Count
	})
	return dist
}

// topN returns at most n leading entries of a distribution.
func topN(dist []DistItem, n int) []DistItem {
	if len(dist) <= n {
		return dist
	}
	return dist[:n]
}
