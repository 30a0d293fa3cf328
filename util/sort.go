package util

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

type naturalKey struct {
	value     string
	hasNumber bool    // True if the value starts with a number, like "48120" or "12 ft"
	isNumber  bool    // True if the value is nothing but a number
	number    float64 // Only meaningful when hasNumber is true
}

func toNaturalKey(s string) naturalKey {
	key := naturalKey{value: s}

	prefix := numberPrefix(s)
	if prefix == "" {
		return key
	}

	number, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return key
	}

	key.hasNumber = true
	key.isNumber = len(prefix) == len(s)
	key.number = number
	return key
}

func (k naturalKey) isLessThan(other naturalKey) bool {
	if k.hasNumber && other.hasNumber {
		if k.number == other.number {
			if k.isNumber != other.isNumber {
				// Plain numbers come before numbers with suffix
				return k.isNumber
			}
			return k.value < other.value
		}
		return k.number < other.number
	}
	if k.hasNumber != other.hasNumber {
		return k.hasNumber
	}

	return k.value < other.value
}

// Sort returns a trimmed and sorted copy of the values. Values with a numeric prefix are ordered by their number and
// come before purely textual values (which are ordered lexicographically).
func Sort(values []string) []string {
	keys := make([]naturalKey, len(values))
	for i, s := range values {
		keys[i] = toNaturalKey(strings.TrimSpace(s))
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].isLessThan(keys[j])
	})

	sorted := make([]string, len(keys))
	for i, key := range keys {
		sorted[i] = key.value
	}
	return sorted
}

// numberPrefix returns the leading number of s (with optional sign and decimal point) or an empty string.
func numberPrefix(s string) string {
	end := 0
	containsDecimalPoint := false
	for i, r := range s {
		if r == '-' && i == 0 {
			end = i + 1
			continue
		}
		if r == '.' && !containsDecimalPoint {
			containsDecimalPoint = true
			end = i + 1
			continue
		}
		if !unicode.IsDigit(r) {
			break
		}
		end = i + 1
	}

	prefix := strings.TrimSuffix(s[:end], ".")
	if prefix == "" || prefix == "-" {
		return ""
	}
	return prefix
}
