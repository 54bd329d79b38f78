package diag

import "fmt"

// Location points at a rule, and optionally one of its productions.
// Production is -1 when the diagnostic concerns the whole rule.
type Location struct {
	Grammar    string
	Head       rune
	Production int
}

func (l Location) String() string {
	if l.Head == 0 {
		return l.Grammar
	}
	if l.Production < 0 {
		return fmt.Sprintf("%s:%c", l.Grammar, l.Head)
	}
	return fmt.Sprintf("%s:%c#%d", l.Grammar, l.Head, l.Production)
}

type Note struct {
	Loc Location
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Location
	Notes    []Note
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %s %s", d.Severity, d.Code.ID(), d.Primary, d.Message)
}
