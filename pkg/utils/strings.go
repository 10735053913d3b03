package utils

import "strings"

// RemoveEmptyStrings trims every element and drops the blank ones, as left
// behind by splitting "a,,b" or "a, b," on commas.
func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}

	return result
}
