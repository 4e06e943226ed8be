package fetch_common

// SplitInChunks splits items into consecutive chunks of at most size elements
func SplitInChunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	chunks := make([][]T, 0, (len(items)+max(size, 1)-1)/max(size, 1))
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// Difference returns the elements of requested that are not keys of present, keeping order
func Difference[V any](requested []string, present map[string]V) []string {
	missing := make([]string, 0)
	for _, key := range requested {
		if _, ok := present[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
