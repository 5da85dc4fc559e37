package bot

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultStatusLimit = 5
	maxStatusLimit     = 20
)

// ParseLimitArg extracts an optional positive count from command arguments.
// An empty argument yields def; values above max are capped.
func ParseLimitArg(args string, def, max int) (int, error) {
	s := strings.TrimSpace(args)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.Fields(s)[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("кількість має бути додатним числом, отримано %q", s)
	}
	if n > max {
		n = max
	}
	return n, nil
}
