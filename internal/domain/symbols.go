package domain

import (
	"sort"
	"strings"
)

// NormalizeSymbols uppercases, trims and deduplicates ticker symbols,
// dropping empties. The result is sorted so repeated inputs compare equal.
func NormalizeSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		cleaned := strings.ToUpper(strings.TrimSpace(sym))
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	sort.Strings(out)
	return out
}
