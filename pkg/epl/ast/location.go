package ast

import "fmt"

// Location represents the source location of a token or AST node in the original
// EPL document. It enables precise error reporting with file, line, and column
// information.
type Location struct {
	File   string // Path to the document (may be a synthetic name for in-memory sources)
	Offset int    // Byte offset into the source (0-based)
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String returns a human-readable representation of the location.
// Format: "file:line:column"
func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("<input>:%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid returns true if the location carries usable line information.
func (l Location) IsValid() bool {
	return l.Line > 0
}
