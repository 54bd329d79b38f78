package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Grammar shape
	GramInfo                 Code = 1000
	GramNoStart              Code = 1001
	GramUndefinedNonTerminal Code = 1002
	GramUnreachableRule      Code = 1003
	GramUnproductiveRule     Code = 1004
	GramDuplicateProduction  Code = 1005
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		GramInfo:                 "Grammar information",
		GramNoStart:              "Start symbol has no productions",
		GramUndefinedNonTerminal: "Reference to an undefined non-terminal",
		GramUnreachableRule:      "Rule is unreachable from the start symbol",
		GramUnproductiveRule:     "Rule can never derive a terminal string",
		GramDuplicateProduction:  "Duplicate production",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("GRM%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
