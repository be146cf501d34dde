// Package parse turns extracted table cells into typed records.
//
// Coercion is best-effort throughout: a value that does not parse becomes
// nil or a declared default, never an error that aborts the row.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Int parses a base-10 integer. Nil when s is not one.
func Int(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// IntOr is Int with a default.
func IntOr(s string, def int) int {
	if n := Int(s); n != nil {
		return *n
	}
	return def
}

// Float parses a decimal number. Nil when s is not one.
func Float(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

// FloatOr is Float with a default.
func FloatOr(s string, def float64) float64 {
	if f := Float(s); f != nil {
		return *f
	}
	return def
}

// Digits keeps only the decimal digits of s, so "$1,250,000" is 1250000.
// No digits yields 0.
func Digits(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return IntOr(b.String(), 0)
}

// Str returns nil for an empty (after trimming) string.
func Str(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

var heightRe = regexp.MustCompile(`^(\d+)-(\d+)$`)

// Height converts a feet-dash-inches token such as "6-3" to inches.
func Height(s string) *int {
	m := heightRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil
	}
	feet, err1 := strconv.Atoi(m[1])
	inches, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return nil
	}
	total := 12*feet + inches
	return &total
}

// Outcome is the classified result of a finished game.
type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
	Tie  Outcome = "tie"
)

var resultSplitRe = regexp.MustCompile(`[\s-]+`)

func resultTokens(s string) []string {
	var out []string
	for _, tok := range resultSplitRe.Split(strings.TrimSpace(s), -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Result classifies the leading token of a result string like "W 23-17".
// Nil when the token names none of the three outcomes.
func Result(s string) *Outcome {
	toks := resultTokens(s)
	if len(toks) == 0 {
		return nil
	}
	lead := strings.ToLower(toks[0])
	var o Outcome
	switch {
	case strings.Contains(lead, "w"):
		o = Win
	case strings.Contains(lead, "l"):
		o = Loss
	case strings.Contains(lead, "t"):
		o = Tie
	default:
		return nil
	}
	return &o
}

// Score returns the numeric tokens of a result string: "W 23-17" is
// [23 17]. A non-numeric leading token is skipped; any other token that
// fails to parse makes the whole score nil.
func Score(s string) []int {
	toks := resultTokens(s)
	if len(toks) > 0 && Int(toks[0]) == nil {
		toks = toks[1:]
	}
	if len(toks) == 0 {
		return nil
	}
	out := make([]int, 0, len(toks))
	for _, tok := range toks {
		n := Int(tok)
		if n == nil {
			return nil
		}
		out = append(out, *n)
	}
	return out
}

var (
	awayRe     = regexp.MustCompile(`(?i)^(@\s*|at\s+)`)
	opponentRe = regexp.MustCompile(`(?i)^(vs\.?\s+|@\s*|at\s+)`)
)

// IsHomeGame reports false for opponents written "@ Team" or "at Team".
func IsHomeGame(opponent string) bool {
	return !awayRe.MatchString(strings.TrimSpace(opponent))
}

// StripOpponent removes the home/away prefix from an opponent string.
func StripOpponent(opponent string) string {
	return strings.TrimSpace(opponentRe.ReplaceAllString(strings.TrimSpace(opponent), ""))
}

// Networks splits "NESN/ESPN" into its broadcasters. Nil when empty.
func Networks(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var out []string
	for _, n := range strings.Split(s, "/") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

var punctRe = regexp.MustCompile("[\\t !\"#$%&'()*\\-/<=>?@\\[\\\\\\]^_`{|},.]+")

// Slugify lowercases text, folds it to ASCII and joins its words with delim.
func Slugify(text, delim string) string {
	var words []string
	for _, word := range punctRe.Split(strings.ToLower(text), -1) {
		if word = asciiFold(word); word != "" {
			words = append(words, word)
		}
	}
	return strings.Join(words, delim)
}

func asciiFold(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Underscore is Slugify with "_", the section key format.
func Underscore(text string) string {
	return Slugify(text, "_")
}

var divisionWordRe = regexp.MustCompile(`(conference|divisi?on|league|football)\s?`)

// DivisionLabel formats a team-list section title: "AL East Division"
// becomes "al_east".
func DivisionLabel(text string) string {
	return Underscore(divisionWordRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), ""))
}

// StandingsDivisionLabel formats a standings subtitle, dropping only the
// word "division".
func StandingsDivisionLabel(text string) string {
	return Underscore(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), "division", ""))
}

// PadInt zero-pads n to two digits, the upstream's query format.
func PadInt(n int) string {
	return fmt.Sprintf("%02d", n)
}

// MonthNumber reduces a month that may exceed 12 back into 1..12.
func MonthNumber(m int) int {
	m %= 12
	if m == 0 {
		return 12
	}
	return m
}

// MonthRange lists the months from..to, excluding to, wrapping past
// December when to is earlier in the year: 9..6 is [9 10 11 12 1 2 3 4 5].
func MonthRange(from, to int) []int {
	if to < from {
		to += 12
	}
	out := make([]int, 0, to-from)
	for m := from; m < to; m++ {
		out = append(out, MonthNumber(m))
	}
	return out
}
