package subtitle

// WordGroup is a run of consecutive words sharing a start time. Indexes
// point into the source word slice.
type WordGroup struct {
	Start   float64
	End     float64
	Indexes []int
}

// GroupByStart merges words sharing a start boundary into display groups.
// Each group ends where the next begins; the last group ends at its final
// word's end.
func GroupByStart(words []Word) []WordGroup {
	var groups []WordGroup
	for i, w := range words {
		if len(groups) == 0 || w.Start != groups[len(groups)-1].Start {
			groups = append(groups, WordGroup{Start: w.Start})
		}
		g := &groups[len(groups)-1]
		g.Indexes = append(g.Indexes, i)
		g.End = w.End
	}
	for i := 0; i+1 < len(groups); i++ {
		groups[i].End = groups[i+1].Start
	}
	return groups
}
