// Package dedup holds the stable de-duplication helpers used when a knowledge
// base is consolidated. All helpers keep the first occurrence of a key and
// preserve insertion order.
package dedup

// ByKey drops every item whose key was already seen.
func ByKey[T any](items []T, key func(T) string) []T {
	if items == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Strings returns the distinct values of items in first-seen order.
func Strings(items []string) []string {
	return ByKey(items, func(s string) string { return s })
}

// Cap truncates items to at most n entries.
func Cap[T any](items []T, n int) []T {
	if n < 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
