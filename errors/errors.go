package errors

import (
	"fmt"
	"strings"
)

// ParseError reports the first position at which the input stopped
// matching the grammar. It includes what the grammar expected there.
type ParseError struct {
	Message  string
	Offset   int
	Line     int
	Column   int
	Expected []string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "prototxt: parsing error at line %d, column %d: ", e.Line, e.Column)
	b.WriteString(e.Message)
	switch len(e.Expected) {
	case 0:
	case 1:
		b.WriteString(", expected " + e.Expected[0])
	default:
		b.WriteString(", expected one of " + strings.Join(e.Expected, ", "))
	}
	return b.String()
}
