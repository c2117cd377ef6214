package log

import "sort"

// KV is a map of key-value pairs attached to a log record.
type KV map[string]any

// kvToArgs flattens the given maps into the alternating key, value form
// slog expects. Keys are emitted in sorted order within each map so the
// output is deterministic.
func kvToArgs(keyVals ...KV) []any {
	args := []any{}

	for _, kv := range keyVals {
		keys := make([]string, 0, len(kv))
		for key := range kv {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			args = append(args, key, kv[key])
		}
	}

	return args
}
