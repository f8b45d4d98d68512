package collection

// Merge folds batch into current by identity and returns a new slice.
//
// The result is ordered as current (first occurrence wins the position) with
// batch values overwriting in place, followed by the batch entries whose keys
// were not present, in batch order. Merging the same batch twice yields the
// same result as merging it once.
func Merge[T any](current, batch []T, key func(T) string) []T {
	index := make(map[string]int, len(current)+len(batch))
	out := make([]T, 0, len(current)+len(batch))

	put := func(item T) {
		k := key(item)
		if i, ok := index[k]; ok {
			out[i] = item
			return
		}
		index[k] = len(out)
		out = append(out, item)
	}

	for _, item := range current {
		put(item)
	}
	for _, item := range batch {
		put(item)
	}

	return out
}
