package grammar

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"
)

type fileGrammar struct {
	Name  string     `toml:"name"`
	Rules []fileRule `toml:"rule"`
}

type fileRule struct {
	Head        string   `toml:"head"`
	Productions []string `toml:"productions"`
}

// LoadFile reads a grammar from a TOML file:
//
//	name = "L1"
//
//	[[rule]]
//	head = "S"
//	productions = ["AB"]
func LoadFile(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar: %w", err)
	}
	g, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Parse decodes grammar TOML. origin is used in error messages and as the
// default name.
func Parse(origin string, data []byte) (*Grammar, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: grammar is not valid UTF-8", origin)
	}
	var fg fileGrammar
	meta, err := toml.Decode(norm.NFC.String(string(data)), &fg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", origin, err)
	}
	if !meta.IsDefined("rule") || len(fg.Rules) == 0 {
		return nil, fmt.Errorf("%s: missing [[rule]]", origin)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", origin, undecoded[0].String())
	}

	name := strings.TrimSpace(fg.Name)
	if name == "" {
		name = origin
	}
	rules := make([]Rule, 0, len(fg.Rules))
	for i, fr := range fg.Rules {
		head, err := parseHead(fr.Head)
		if err != nil {
			return nil, fmt.Errorf("%s: rule %d: %w", origin, i+1, err)
		}
		rules = append(rules, Rule{Head: head, Productions: fr.Productions})
	}
	return New(name, rules), nil
}

func parseHead(s string) (rune, error) {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || !IsNonTerminal(r) {
		return 0, fmt.Errorf("head %q must be a single uppercase letter", s)
	}
	return r, nil
}
