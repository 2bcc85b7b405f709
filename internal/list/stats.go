package list

// Derived stats for the stat-card row above a table. These are computed
// over the currently loaded page only: a stat card next to a paginated
// table describes what the user is looking at, not the whole remote
// collection. Anything global must come from the server's `total`.

// CountBy counts the items on the current page matching pred.
func CountBy[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

// SumBy adds sel over the items on the current page matching pred.
// Pass a nil pred to sum everything.
func SumBy[T any](items []T, pred func(T) bool, sel func(T) int64) int64 {
	var sum int64
	for _, it := range items {
		if pred == nil || pred(it) {
			sum += sel(it)
		}
	}
	return sum
}

// GroupCount buckets the current page by key, e.g. status -> count for a
// kanban column header or a status breakdown card.
func GroupCount[T any](items []T, key func(T) string) map[string]int {
	out := map[string]int{}
	for _, it := range items {
		out[key(it)]++
	}
	return out
}
