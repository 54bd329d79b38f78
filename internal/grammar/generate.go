package grammar

import (
	"context"
	"sort"
	"strconv"
	"unicode/utf8"

	"cflclosure/internal/trace"
)

// DefaultMaxDepth bounds the number of rewrites applied after the start symbol.
const DefaultMaxDepth = 10

// Limits bounds a generation run.
type Limits struct {
	MaxLength int // longest sentential form that is still expanded
	MaxDepth  int // rewrite budget for each start production
}

// DefaultLimits returns limits with the given length and DefaultMaxDepth.
func DefaultLimits(maxLength int) Limits {
	return Limits{MaxLength: maxLength, MaxDepth: DefaultMaxDepth}
}

// Set is a deduplicated collection of terminal strings.
type Set map[string]struct{}

// NewSet returns a set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts s; adding an existing member is a no-op.
func (s Set) Add(str string) { s[str] = struct{}{} }

// Has reports membership.
func (s Set) Has(str string) bool {
	_, ok := s[str]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for str := range s {
		out = append(out, str)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the members present in both sets.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set)
	for str := range small {
		if large.Has(str) {
			out.Add(str)
		}
	}
	return out
}

// Union adds every member of other to s and returns s.
func (s Set) Union(other Set) Set {
	for str := range other {
		s.Add(str)
	}
	return s
}

// Stats counts what happened during a generation run.
type Stats struct {
	Visited  int // sentential forms entered
	Pruned   int // forms abandoned on the depth or length bound
	Recorded int // terminal forms recorded, duplicates included
}

// Generate enumerates the terminal strings reachable from the start symbol
// within lim. The result is an under-approximation of the language: strings
// that need longer forms or more rewrites are silently omitted.
func (g *Grammar) Generate(lim Limits) Set {
	out, _ := g.GenerateStats(lim)
	return out
}

// GenerateStats is Generate with derivation counters.
func (g *Grammar) GenerateStats(lim Limits) (Set, Stats) {
	d := deriver{g: g, maxLen: lim.MaxLength, out: make(Set)}
	for _, p := range g.Productions(Start) {
		d.derive(p, lim.MaxDepth)
	}
	return d.out, d.stats
}

// GenerateContext is Generate wrapped in a trace span.
func (g *Grammar) GenerateContext(ctx context.Context, lim Limits) Set {
	parent := trace.CurrentSpan(ctx)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeGrammar, "generate:"+g.Name(), parent.SpanID)
	out, st := g.GenerateStats(lim)
	span.WithExtra("max_length", strconv.Itoa(lim.MaxLength)).
		WithExtra("max_depth", strconv.Itoa(lim.MaxDepth)).
		WithExtra("visited", strconv.Itoa(st.Visited)).
		WithExtra("pruned", strconv.Itoa(st.Pruned)).
		End(strconv.Itoa(len(out)) + " strings")
	return out
}

type deriver struct {
	g      *Grammar
	maxLen int
	out    Set
	stats  Stats
}

// derive rewrites the leftmost non-terminal of cur with each of its
// productions. Forms longer than maxLen are counted with their
// non-terminals and dropped.
func (d *deriver) derive(cur string, depth int) {
	d.stats.Visited++
	if depth <= 0 || utf8.RuneCountInString(cur) > d.maxLen {
		d.stats.Pruned++
		return
	}
	for i, r := range cur {
		if !IsNonTerminal(r) {
			continue
		}
		head, tail := cur[:i], cur[i+utf8.RuneLen(r):]
		for _, p := range d.g.Productions(r) {
			d.derive(head+p+tail, depth-1)
		}
		return
	}
	d.out.Add(cur)
	d.stats.Recorded++
}
