package learning

// Vote returns the most frequent label. Ties go to the lowest label, so the
// result never depends on the order of the votes. An empty ballot votes 0.
func Vote(labels []int) int {
	counts := make(map[int]int, 2)
	for _, l := range labels {
		counts[l]++
	}
	var (
		best  int
		votes int
	)
	for l, n := range counts {
		if n > votes || (n == votes && l < best) {
			best, votes = l, n
		}
	}
	return best
}
