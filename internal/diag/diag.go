package diag

import "fmt"

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Kind says which stage produced a diagnostic.
type Kind int

const (
	KindScan Kind = iota
	KindParse
	KindLint
)

func (k Kind) String() string {
	switch k {
	case KindScan:
		return "scan"
	case KindParse:
		return "parse"
	default:
		return "lint"
	}
}

const (
	CodeScan  = "LS0001"
	CodeParse = "LP0001"
)

type Range struct {
	Line   int // 1-based
	Col    int // 1-based
	Length int // best-effort; can be 1 if unknown
}

type Diagnostic struct {
	Kind     Kind
	Code     string
	Message  string
	Severity Severity
	Range    Range
	// Where is the location suffix of the user-facing line: "", " at end" or " at 'x'".
	Where string
}

// String renders the diagnostic the way the interpreter reports it to users.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Range.Line, d.Where, d.Message)
}

// Format renders the diagnostic in the compiler-style form used by lint and editors.
func (d Diagnostic) Format(path string) string {
	if d.Code != "" {
		return fmt.Sprintf("%s:%d:%d: %s %s: %s", path, d.Range.Line, d.Range.Col, d.Severity.String(), d.Code, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", path, d.Range.Line, d.Range.Col, d.Severity.String(), d.Message)
}

type List []Diagnostic

func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (l List) OfKind(k Kind) List {
	var out List
	for _, d := range l {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}
