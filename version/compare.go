// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"fmt"
	"strings"
)

// Compare performs a semantic comparison between two version strings.
// Returns 1 if a > b, -1 if a < b, and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", a, err)
	}

	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", b, err)
	}

	for i := range av {
		switch {
		case av[i] > bv[i]:
			return 1, nil
		case av[i] < bv[i]:
			return -1, nil
		}
	}

	return 0, nil
}

func parseSemver(s string) (v [3]int, err error) {
	_, err = fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &v[0], &v[1], &v[2])
	return
}
