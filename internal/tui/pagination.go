package tui

// pageItems returns the page numbers to show for current out of total, with
// 0 marking an elided range.
func pageItems(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if total <= 7 {
		out := make([]int, total)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}
	current = max(1, min(current, total))

	out := []int{1}
	from, to := max(2, current-1), min(total-1, current+1)
	if from > 2 {
		out = append(out, 0)
	}
	for p := from; p <= to; p++ {
		out = append(out, p)
	}
	if to < total-1 {
		out = append(out, 0)
	}
	return append(out, total)
}
