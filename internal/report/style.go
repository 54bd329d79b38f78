package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const ruleWidth = 60

// Style holds the colors used by the report. The zero value prints plain text.
type Style struct {
	heading *color.Color
	good    *color.Color
	bad     *color.Color
	quote   *color.Color
}

// NewStyle returns a Style; with colored false every color is disabled.
func NewStyle(colored bool) Style {
	s := Style{
		heading: color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed, color.Bold),
		quote:   color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{s.heading, s.good, s.bad, s.quote} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

// printer remembers the first write error so callers check once.
type printer struct {
	w     io.Writer
	style Style
	err   error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(s string) { p.printf("%s\n", s) }

func (p *printer) blank() { p.printf("\n") }

func (p *printer) rule() { p.line(strings.Repeat("=", ruleWidth)) }

func (p *printer) banner(title string) {
	p.rule()
	p.line(paint(p.style.heading, title))
	p.rule()
	p.blank()
}

func (p *printer) quoted(s string) string {
	return paint(p.style.quote, "'"+s+"'")
}

func displayWidth(s string) int { return runewidth.StringWidth(s) }

// padRight pads s to width display cells.
func padRight(s string, width int) string {
	if gap := width - displayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
