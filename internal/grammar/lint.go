package grammar

import (
	"fmt"

	"cflclosure/internal/diag"
)

// Lint reports shape problems of g. None of them stop generation; they
// explain why some branches die. A missing start rule is an error since the
// grammar then derives nothing at all.
func Lint(g *Grammar, r diag.Reporter) {
	if g == nil || r == nil {
		return
	}
	name := g.Name()
	if len(g.Productions(Start)) == 0 {
		r.Report(diag.GramNoStart, diag.SevError, diag.Location{Grammar: name},
			fmt.Sprintf("no productions for start symbol %c; nothing can be generated", Start), nil)
	}

	for _, rule := range g.rules {
		seen := make(map[string]int, len(rule.Productions))
		for i, p := range rule.Productions {
			loc := diag.Location{Grammar: name, Head: rule.Head, Production: i}
			if first, dup := seen[p]; dup {
				r.Report(diag.GramDuplicateProduction, diag.SevInfo, loc,
					fmt.Sprintf("production %q repeats alternative #%d", p, first),
					[]diag.Note{{Loc: diag.Location{Grammar: name, Head: rule.Head, Production: first}, Msg: "first defined here"}})
			} else {
				seen[p] = i
			}
			reported := make(map[rune]bool)
			for _, sym := range p {
				if !IsNonTerminal(sym) || reported[sym] {
					continue
				}
				if _, ok := g.index[sym]; !ok {
					reported[sym] = true
					r.Report(diag.GramUndefinedNonTerminal, diag.SevWarning, loc,
						fmt.Sprintf("%c has no rule; derivations through %q never terminate", sym, p), nil)
				}
			}
		}
	}

	reachable := g.reachable()
	productive := g.productive()
	for _, rule := range g.rules {
		loc := diag.Location{Grammar: name, Head: rule.Head, Production: -1}
		if !reachable[rule.Head] {
			r.Report(diag.GramUnreachableRule, diag.SevInfo, loc,
				fmt.Sprintf("%c is not reachable from %c", rule.Head, Start), nil)
		}
		if !productive[rule.Head] {
			r.Report(diag.GramUnproductiveRule, diag.SevWarning, loc,
				fmt.Sprintf("%c derives no terminal string", rule.Head), nil)
		}
	}
}

func (g *Grammar) reachable() map[rune]bool {
	seen := make(map[rune]bool)
	if _, ok := g.index[Start]; !ok {
		return seen
	}
	stack := []rune{Start}
	seen[Start] = true
	for len(stack) > 0 {
		head := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range g.Productions(head) {
			for _, sym := range p {
				if IsNonTerminal(sym) && !seen[sym] {
					seen[sym] = true
					stack = append(stack, sym)
				}
			}
		}
	}
	return seen
}

// productive computes the non-terminals that derive some terminal string,
// iterating to a fixed point.
func (g *Grammar) productive() map[rune]bool {
	ok := make(map[rune]bool, len(g.rules))
	for changed := true; changed; {
		changed = false
		for _, rule := range g.rules {
			if ok[rule.Head] {
				continue
			}
			for _, p := range rule.Productions {
				if g.allProductive(p, ok) {
					ok[rule.Head] = true
					changed = true
					break
				}
			}
		}
	}
	return ok
}

func (g *Grammar) allProductive(p string, ok map[rune]bool) bool {
	for _, sym := range p {
		if IsNonTerminal(sym) && !ok[sym] {
			return false
		}
	}
	return true
}
