package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/order/user ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, true
}

// Password enforces a minimal length window for registration.
func Password(s string) bool {
	return len(s) >= 4 && len(s) <= 72
}

// SortOrder normalizes the catalog sort parameter.
func SortOrder(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s != "lowest" && s != "highest" {
		return ""
	}
	return s
}

// Rating bounds-checks a review score.
func Rating(n int) bool { return n >= 0 && n <= 5 }
