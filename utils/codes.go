package utils

import "strings"

// NormalizeCode lower-cases and trims a set code. Set codes compare
// case-insensitively everywhere.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// NormalizeCodes normalizes codes, dropping blanks and duplicates while
// keeping first-seen order
func NormalizeCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		normalized := NormalizeCode(code)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

// CodeSet builds a lookup of normalized codes
func CodeSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if normalized := NormalizeCode(code); normalized != "" {
			set[normalized] = struct{}{}
		}
	}
	return set
}
