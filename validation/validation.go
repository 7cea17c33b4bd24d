package validation

import (
	"strconv"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// OneOf flags value when it is not one of allowed (case-insensitive).
func OneOf(field, value string, allowed []string, v Violations) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "not_allowed"
}

// Index parses a zero-based position from a path segment. Range checks belong to the
// caller, so negative values are returned as-is.
func Index(field, raw string, v Violations) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		v[field] = "invalid_index"
		return -1
	}
	return n
}
