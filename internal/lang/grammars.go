// Package lang holds the two context-free languages whose intersection is
// {a^n b^n c^n | n ≥ 0}, the direct generator for that language and its
// membership test.
package lang

import "cflclosure/internal/grammar"

// L1 builds a grammar for {a^i b^j c^k | i = j}.
// A produces matched a/b pairs, B any number of trailing c's.
func L1() *grammar.Grammar {
	return grammar.New("L1 = {a^i b^j c^k | i = j}", []grammar.Rule{
		{Head: 'S', Productions: []string{"AB"}},
		{Head: 'A', Productions: []string{"aAb", "ab", ""}},
		{Head: 'B', Productions: []string{"Bc", "c", ""}},
	})
}

// L2 builds a grammar for {a^i b^j c^k | j = k}.
// A produces any number of leading a's, B matched b/c pairs.
func L2() *grammar.Grammar {
	return grammar.New("L2 = {a^i b^j c^k | j = k}", []grammar.Rule{
		{Head: 'S', Productions: []string{"AB"}},
		{Head: 'A', Productions: []string{"aA", "a", ""}},
		{Head: 'B', Productions: []string{"bBc", "bc", ""}},
	})
}
