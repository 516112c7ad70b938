// Package strutil converts query string values.
package strutil

import (
	"strconv"
	"strings"
)

// ConvertToInt parses s as an int and returns 0 when s is not a number.
func ConvertToInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ConvertToBool parses s as a bool and returns false when s is not a bool.
func ConvertToBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return b
}
