package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// Title validates an ad title: trims, enforces a non-empty value and max length.
func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Description trims and caps an optional ad description.
func Description(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 2000 {
		return "", false
	}
	return s, true
}

// Price parses a non-negative, finite price value. ParseFloat also
// accepts "NaN" and "Inf", which would turn into filters that match
// nothing or everything.
func Price(s string) (float64, bool) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0, false
	}
	return p, true
}

// ID parses a positive integer resource identifier (ad/user/category ids).
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Sort normalizes a sort selector. Unknown values fall back to the
// default newest-first ordering rather than erroring.
func Sort(s string) string {
	switch strings.TrimSpace(s) {
	case "priceAsc":
		return "priceAsc"
	case "priceDesc":
		return "priceDesc"
	default:
		return ""
	}
}

// PageSize clamps a page-size query value; 0 means no limit.
func PageSize(s string) int {
	if strings.TrimSpace(s) == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// Page parses a 1-based page number.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 72
}
