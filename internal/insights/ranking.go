package insights

import "sort"

// RankInsights sorts insights by Score in descending order. The sort is
// stable so that rules emitting equal scores keep their registration order.
func RankInsights(insights []Insight) []Insight {
	sorted := make([]Insight, len(insights))
	copy(sorted, insights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}
