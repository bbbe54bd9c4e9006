package domain

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TeamTotals is the per-team task tally the efficiency report is built from.
type TeamTotals struct {
	Team             string
	TotalTasks       int
	CompletedTasks   int
	TotalMinutes     int
	CompletedMinutes int
}

// Efficiency is the completed share of work as a whole percentage. Minutes
// are preferred; teams without logged minutes fall back to task counts.
// Rounding is half-to-even.
func (t TeamTotals) Efficiency() int {
	switch {
	case t.TotalMinutes > 0:
		return percent(t.CompletedMinutes, t.TotalMinutes)
	case t.TotalTasks > 0:
		return percent(t.CompletedTasks, t.TotalTasks)
	default:
		return 0
	}
}

// Label renders the team as a department name, e.g. "seo" -> "Seo Team".
func (t TeamTotals) Label() string {
	return strings.TrimSpace(capitalize(t.Team) + " Team")
}

func percent(part, whole int) int {
	return int(math.RoundToEven(float64(part) / float64(whole) * 100))
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
