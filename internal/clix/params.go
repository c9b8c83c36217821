package clix

import (
	"strings"

	"github.com/spf13/pflag"
)

// ParseCategories reads the "categories" flag as a comma-separated list,
// trimming whitespace and dropping empty entries.
func ParseCategories(flags *pflag.FlagSet) ([]string, error) {
	raw, _ := flags.GetString("categories")
	var categories []string
	if raw != "" {
		for _, c := range strings.Split(raw, ",") {
			trimmed := strings.TrimSpace(c)
			if trimmed != "" {
				categories = append(categories, trimmed)
			}
		}
	}
	return categories, nil
}

// ParseLimit reads the "limit" flag, defaulting to 20 for non-positive
// values.
func ParseLimit(flags *pflag.FlagSet) (int, error) {
	limit, _ := flags.GetInt("limit")
	if limit <= 0 {
		limit = 20
	}
	return limit, nil
}
