package grammar

import (
	"strings"
	"unicode"
)

// Start is the distinguished start symbol of every grammar.
const Start = 'S'

// IsNonTerminal reports whether r names a non-terminal.
// Uppercase letters are non-terminals; everything else is a terminal.
func IsNonTerminal(r rune) bool {
	return unicode.IsUpper(r)
}

// Rule lists the alternatives of a single non-terminal.
type Rule struct {
	Head        rune
	Productions []string
}

// String renders the rule as "A → x | y", showing the empty production as ε.
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteRune(r.Head)
	sb.WriteString(" → ")
	for i, p := range r.Productions {
		if i > 0 {
			sb.WriteString(" | ")
		}
		if p == "" {
			sb.WriteString("ε")
			continue
		}
		sb.WriteString(p)
	}
	return sb.String()
}

// Grammar is an immutable context-free grammar keyed by non-terminal.
type Grammar struct {
	name  string
	rules []Rule
	index map[rune]int
}

// New builds a grammar from rules. Rules sharing a head are merged in the
// order they appear. The input slices are copied.
func New(name string, rules []Rule) *Grammar {
	g := &Grammar{
		name:  name,
		rules: make([]Rule, 0, len(rules)),
		index: make(map[rune]int, len(rules)),
	}
	for _, r := range rules {
		prods := append([]string(nil), r.Productions...)
		if i, ok := g.index[r.Head]; ok {
			g.rules[i].Productions = append(g.rules[i].Productions, prods...)
			continue
		}
		g.index[r.Head] = len(g.rules)
		g.rules = append(g.rules, Rule{Head: r.Head, Productions: prods})
	}
	return g
}

// Name returns the descriptive name of the grammar.
func (g *Grammar) Name() string {
	if g == nil {
		return ""
	}
	return g.name
}

// Productions returns the alternatives for head, or nil when head has no rule.
// The returned slice must not be modified.
func (g *Grammar) Productions(head rune) []string {
	if g == nil {
		return nil
	}
	i, ok := g.index[head]
	if !ok {
		return nil
	}
	return g.rules[i].Productions
}

// Heads returns the defined non-terminals in declaration order.
func (g *Grammar) Heads() []rune {
	if g == nil {
		return nil
	}
	heads := make([]rune, len(g.rules))
	for i, r := range g.rules {
		heads[i] = r.Head
	}
	return heads
}

// Rules returns a copy of the rules in declaration order.
func (g *Grammar) Rules() []Rule {
	if g == nil {
		return nil
	}
	out := make([]Rule, len(g.rules))
	for i, r := range g.rules {
		out[i] = Rule{Head: r.Head, Productions: append([]string(nil), r.Productions...)}
	}
	return out
}

// String renders one rule per line.
func (g *Grammar) String() string {
	if g == nil {
		return ""
	}
	var sb strings.Builder
	for i, r := range g.rules {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(r.String())
	}
	return sb.String()
}
