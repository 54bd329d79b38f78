package lang

import (
	"regexp"
	"strings"
)

var anbncnShape = regexp.MustCompile(`^(a+)(b+)(c+)$`)

// Examples returns a^n b^n c^n for n = 0..max, shortest first.
func Examples(max int) []string {
	if max < 0 {
		return []string{}
	}
	out := make([]string, 0, max+1)
	for n := 0; n <= max; n++ {
		out = append(out, strings.Repeat("a", n)+strings.Repeat("b", n)+strings.Repeat("c", n))
	}
	return out
}

// IsAnBnCn reports whether s is in {a^n b^n c^n | n ≥ 0}.
func IsAnBnCn(s string) bool {
	if s == "" {
		return true
	}
	m := anbncnShape.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	return len(m[1]) == len(m[2]) && len(m[2]) == len(m[3])
}

// Verdict is the membership result for one string.
type Verdict struct {
	Input  string
	Member bool
}

// Verify classifies each string. Order follows the input.
func Verify(strs []string) []Verdict {
	out := make([]Verdict, len(strs))
	for i, s := range strs {
		out[i] = Verdict{Input: s, Member: IsAnBnCn(s)}
	}
	return out
}
