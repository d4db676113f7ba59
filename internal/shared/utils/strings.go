package utils

import "strings"

// TrimAll trims every non-nil string in place. Request DTOs call it before
// Validate so whitespace-only input fails Required instead of being stored empty.
func TrimAll(values ...*string) {
	for _, v := range values {
		if v != nil {
			*v = strings.TrimSpace(*v)
		}
	}
}
