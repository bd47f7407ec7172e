// Package diagnostics defines the checker's closed error-kind vocabulary
// (spec §7) and the message-template table used to render them. Shaped
// after the teacher's own internal/diagnostics package: a closed
// ErrorCode enum, a template-per-code table, and a single error struct
// that carries a Span alongside formatting args.
package diagnostics

import "fmt"

// Code is the closed set of error kinds the checker core can report.
type Code int

const (
	TypeMismatch Code = iota
	CannotResolveMark
	UnknownAttribute
	ModuleNotFound
	InvalidConfig
	IoError
	Stop
)

var templates = map[Code]string{
	TypeMismatch:       "%s is not a %s of %s",
	CannotResolveMark:  "cannot resolve mark %s",
	UnknownAttribute:   "unknown attribute %q, ignored",
	ModuleNotFound:     "module %q not found",
	InvalidConfig:      "invalid configuration: %s",
	IoError:            "i/o error: %s",
	Stop:               "checking stopped",
}

// Span is the minimal (file, line, col) location a diagnostic anchors
// to. The parser/AST layer that would otherwise own richer spans is out
// of scope for this module (spec §1); this is the read-only view of
// "where" the Options/Report boundary passes through.
type Span struct {
	File string
	Line int
	Col  int
}

func (s Span) String() string {
	if s.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}

// Error is a single diagnostic: a code, the span it refers to, and the
// rendered message.
type Error struct {
	Code    Code
	Span    Span
	Message string
}

func (e *Error) Error() string {
	if e.Span.File == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// New formats a diagnostic from its code's template and args.
func New(code Code, span Span, args ...any) *Error {
	tmpl, ok := templates[code]
	if !ok {
		tmpl = "unknown diagnostic"
	}
	return &Error{Code: code, Span: span, Message: fmt.Sprintf(tmpl, args...)}
}

// Wrap builds an IoError diagnostic from an underlying error, passing
// through its message as Go's fmt.Errorf %w would, but rendered through
// the same template table so IoError diagnostics look uniform.
func Wrap(span Span, err error) *Error {
	return New(IoError, span, err)
}
