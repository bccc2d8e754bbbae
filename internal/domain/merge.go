package domain

// Upsert removes every entry of items sharing a key with an update and
// appends the updates. Within updates the last entry for a key wins. The
// input slice is never modified, and the result holds each key of updates
// exactly once.
func Upsert[T any, K comparable](items []T, key func(T) K, updates ...T) []T {
	last := make(map[K]int, len(updates))
	for i, u := range updates {
		last[key(u)] = i
	}
	out := make([]T, 0, len(items)+len(last))
	for _, it := range items {
		if _, ok := last[key(it)]; !ok {
			out = append(out, it)
		}
	}
	for i, u := range updates {
		if last[key(u)] == i {
			out = append(out, u)
		}
	}
	return out
}

// Remove drops every entry of items whose key is in keys. The input slice
// is never modified.
func Remove[T any, K comparable](items []T, key func(T) K, keys ...K) []T {
	drop := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, ok := drop[key(it)]; !ok {
			out = append(out, it)
		}
	}
	return out
}

// Toggle adds values to set when on is true and removes them otherwise,
// never producing duplicates.
func Toggle[K comparable](set []K, on bool, values ...K) []K {
	identity := func(k K) K { return k }
	out := Remove(set, identity, values...)
	if !on {
		return out
	}
	seen := make(map[K]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
