package cli

import (
	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
)

// ParseTableFlag parses a --table flag value. Empty selects the overview.
func ParseTableFlag(flag string) (device.Category, error) {
	if flag == "" {
		return device.CategoryOverview, nil
	}
	cat, err := device.ParseCategory(flag)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"'"+flag+"' isn't a table",
			"Use one of: overview, sustainability, performance, features.")
	}
	return cat, nil
}
