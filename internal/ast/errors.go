package ast

import (
	"fmt"
	"strings"

	"vimdoc2html/internal/cst"
)

// TypeError reports a CST node whose kind matches none of the kinds valid
// at its grammar position. Always a hard failure of the enclosing build.
type TypeError struct {
	Start    cst.Position
	Expected []string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("[@ (%d, %d)] expected %s, but was actually %s",
		e.Start.Row, e.Start.Column, strings.Join(e.Expected, " or "), e.Actual)
}

// MissingFieldError reports a required single-child field with zero
// matching named children.
type MissingFieldError struct {
	Start    cst.Position
	Name     string
	NodeKind string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("[%s @ (%d, %d)] missing %s",
		e.NodeKind, e.Start.Row, e.Start.Column, e.Name)
}

// TooManyChildrenError reports a required single-child field with more than
// one matching named child.
type TooManyChildrenError struct {
	Start    cst.Position
	Expected int
	Actual   int
	NodeKind string
}

func (e *TooManyChildrenError) Error() string {
	return fmt.Sprintf("[%s @ (%d, %d)] expected %d named children, but had %d",
		e.NodeKind, e.Start.Row, e.Start.Column, e.Expected, e.Actual)
}

// EncodingError reports a terminal node whose source span is not valid
// UTF-8. Only reachable when the source arrives as raw bytes.
type EncodingError struct {
	Start    cst.Position
	NodeKind string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("[%s @ (%d, %d)] span is not valid UTF-8",
		e.NodeKind, e.Start.Row, e.Start.Column)
}
