package report

import "io"

var proofLines = []string{
	"Theorem: L = {a^n b^n c^n | n ≥ 0} is not context-free",
	"",
	"Proof by contradiction using the pumping lemma for CFLs:",
	"",
	"Assume L is context-free. Then there exists a pumping length p > 0",
	"such that for any string s ∈ L with |s| ≥ p, we can write s = uvwxy where:",
	"1. |vwx| ≤ p",
	"2. |vx| ≥ 1",
	"3. For all i ≥ 0, uv^i wx^i y ∈ L",
	"",
	"Consider the string s = a^p b^p c^p ∈ L",
	"Since |s| = 3p ≥ p, the pumping lemma applies.",
	"",
	"Case analysis based on where vwx can be positioned:",
	"",
	"Case 1: vwx contains only a's",
	"  - Then v = a^k, x = a^m for some k,m ≥ 0, k+m ≥ 1",
	"  - Pumping up: uv^2 wx^2 y = a^(p+k+m) b^p c^p",
	"  - This has more a's than b's or c's, so ∉ L",
	"",
	"Case 2: vwx contains only b's",
	"  - Pumping changes the number of b's but not of a's or c's",
	"",
	"Case 3: vwx contains only c's",
	"  - Pumping changes the number of c's but not of a's or b's",
	"",
	"Case 4: vwx spans across a's and b's",
	"  - Since |vwx| ≤ p, it cannot reach any c",
	"  - Pumping changes the a's or b's while the c's stay at p",
	"",
	"Case 5: vwx spans across b's and c's",
	"  - Since |vwx| ≤ p, it cannot reach any a",
	"  - Pumping changes the b's or c's while the a's stay at p",
	"",
	"In every case uv^2 wx^2 y ∉ L, contradicting the pumping lemma.",
	"Therefore, L is not context-free. □",
}

// Proof prints the pumping-lemma argument that a^n b^n c^n is not
// context-free.
func Proof(w io.Writer, style Style) error {
	p := &printer{w: w, style: style}
	p.banner("PUMPING LEMMA PROOF")
	for _, l := range proofLines {
		p.line(l)
	}
	p.blank()
	return p.err
}
