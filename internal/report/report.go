// Package report renders the demonstration as console text.
package report

import (
	"fmt"
	"io"

	"cflclosure/internal/diag"
	"cflclosure/internal/grammar"
	"cflclosure/internal/lang"
	"cflclosure/internal/pipeline"
)

// Header prints the title block.
func Header(w io.Writer, style Style) error {
	p := &printer{w: w, style: style}
	p.line(paint(style.heading, "Context-Free Languages are not closed under intersection"))
	p.rule()
	p.blank()
	return p.err
}

// Demonstration prints the grammars, samples, examples, intersection and
// per-member verification held in res.
func Demonstration(w io.Writer, style Style, res pipeline.Result) error {
	p := &printer{w: w, style: style}
	p.banner("INTERSECTION DEMONSTRATION")

	p.grammar("L1", res.Left)
	p.grammar("L2", res.Right)

	if res.Diagnostics != nil && res.Diagnostics.Len() > 0 {
		p.diagnostics(res.Diagnostics)
	}

	p.list("Sample strings from L1:", res.LeftSample)
	p.list("Sample strings from L2:", res.RightSample)
	p.list("Manual examples of strings in {a^n b^n c^n | n ≥ 0}:", res.Examples)
	p.list("Intersection L1 ∩ L2:", res.Members)

	p.line("Verification that intersection strings are of form a^n b^n c^n:")
	p.verdicts(res.Verdicts)
	p.blank()

	p.line("CONCLUSION:")
	p.line("L1 and L2 are both context-free languages.")
	p.line("L1 ∩ L2 = {a^n b^n c^n | n ≥ 0}")
	p.line("But {a^n b^n c^n | n ≥ 0} is not context-free (proven above).")
	p.line("Therefore, the set of context-free languages is not closed under intersection. □")
	p.blank()
	return p.err
}

// Summary prints the closing recap.
func Summary(w io.Writer, style Style) error {
	p := &printer{w: w, style: style}
	p.banner("SUMMARY")
	p.line("1. We constructed two context-free languages L1 and L2")
	p.line("2. We showed that L1 ∩ L2 = {a^n b^n c^n | n ≥ 0}")
	p.line("3. We proved that {a^n b^n c^n | n ≥ 0} is not context-free using pumping lemma")
	p.line("4. Therefore, CFLs are not closed under intersection")
	return p.err
}

// Full prints header, proof, demonstration and summary in that order.
func Full(w io.Writer, style Style, res pipeline.Result) error {
	for _, part := range []func() error{
		func() error { return Header(w, style) },
		func() error { return Proof(w, style) },
		func() error { return Demonstration(w, style, res) },
		func() error { return Summary(w, style) },
	} {
		if err := part(); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

// Strings prints one quoted string per line, for the generate subcommand.
func Strings(w io.Writer, style Style, title string, strs []string) error {
	p := &printer{w: w, style: style}
	p.list(title, strs)
	return p.err
}

// Grammar prints the rules of g under label, followed by its diagnostics
// when bag is non-empty.
func Grammar(w io.Writer, style Style, label string, g *grammar.Grammar, bag *diag.Bag) error {
	p := &printer{w: w, style: style}
	p.grammar(label, g)
	if bag != nil && bag.Len() > 0 {
		p.diagnostics(bag)
	}
	return p.err
}

// Verdicts prints one membership verdict per line with the arrows aligned.
func Verdicts(w io.Writer, style Style, verdicts []lang.Verdict) error {
	p := &printer{w: w, style: style}
	p.verdicts(verdicts)
	return p.err
}

func (p *printer) grammar(label string, g *grammar.Grammar) {
	p.printf("%s = %s\n", label, g.Name())
	p.printf("Grammar for %s:\n", label)
	for _, r := range g.Rules() {
		p.printf("  %s\n", r)
	}
	p.blank()
}

func (p *printer) diagnostics(bag *diag.Bag) {
	p.line("Grammar diagnostics:")
	for _, d := range bag.Items() {
		sev := paint(p.style.quote, d.Severity.String())
		if d.Severity == diag.SevError || d.Severity == diag.SevWarning {
			sev = paint(p.style.bad, d.Severity.String())
		}
		p.printf("  %s %s %s %s\n", sev, d.Code.ID(), d.Primary, d.Message)
		for _, n := range d.Notes {
			p.printf("      note: %s %s\n", n.Loc, n.Msg)
		}
	}
	p.blank()
}

func (p *printer) verdicts(verdicts []lang.Verdict) {
	width := 0
	for _, v := range verdicts {
		if n := displayWidth("'" + v.Input + "'"); n > width {
			width = n
		}
	}
	for _, v := range verdicts {
		verdict := paint(p.style.good, "true")
		if !v.Member {
			verdict = paint(p.style.bad, "false")
		}
		// pad before painting so escape codes don't skew the column
		p.printf("  %s → %s\n", p.quotedPadded(v.Input, width), verdict)
	}
}

func (p *printer) list(title string, strs []string) {
	p.line(title)
	for _, s := range strs {
		p.printf("  %s\n", p.quoted(s))
	}
	p.blank()
}

func (p *printer) quotedPadded(s string, width int) string {
	q := "'" + s + "'"
	pad := padRight(q, width)
	return paint(p.style.quote, q) + pad[len(q):]
}
