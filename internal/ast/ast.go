// Package ast defines the validated, strongly-typed help-file tree and the
// builder that constructs it from a CST. The tree is immutable after
// construction and borrows its terminal text from the source buffer, which
// must outlive it.
package ast

// HelpFile is the document root; children appear in document order.
type HelpFile struct {
	Children []Block
}

// Block is a paragraph-level group of lines and list items.
type Block struct {
	Children []BlockChild
}

// BlockChild is either a Line or a LineLi.
type BlockChild interface{ blockChild() }

// Line is a single line of help text.
type Line struct {
	Children []LineChild
}

func (Line) blockChild()  {}
func (Line) lineLiChild() {}

// LineChild is any inline or block element that may appear inside a Line.
type LineChild interface{ lineChild() }

// LineLi is a list item.
type LineLi struct {
	Children []LineLiChild
}

func (LineLi) blockChild() {}

// LineLiChild is either a Codeblock or a Line.
type LineLiChild interface{ lineLiChild() }

// HChild is any element that may appear inside a heading or column heading.
type HChild interface{ hChild() }

// Argument is a command argument, e.g. {arg}.
type Argument struct {
	Text Word
}

// Codeblock is a fenced code region with an optional language tag.
type Codeblock struct {
	Language *Language
	Children []Line
}

// Codespan is inline code, e.g. `expr`.
type Codespan struct {
	Text Word
}

// ColumnHeading is a tilde-marked column heading line.
type ColumnHeading struct {
	Name []HChild
}

// H1 is a top-level heading (===== rule).
type H1 struct {
	Children []HChild
}

// H2 is a second-level heading (----- rule).
type H2 struct {
	Children []HChild
}

// H3 is an uppercase-name heading; the name is mandatory and leading.
type H3 struct {
	Name     UppercaseName
	Children []HChild
}

// Keycode is a key notation terminal, e.g. <CR>.
type Keycode struct {
	Text string
}

// Language is the language tag of a fenced code block.
type Language struct {
	Text string
}

// Optionlink references an option, e.g. 'textwidth'.
type Optionlink struct {
	Text Word
}

// Tag defines a help tag, e.g. *api-intro*.
type Tag struct {
	Text Word
}

// Taglink references a help tag, e.g. |api-intro|.
type Taglink struct {
	Text Word
}

// UppercaseName is the terminal name of an H3 heading.
type UppercaseName struct {
	Text string
}

// Url is a hyperlink.
type Url struct {
	Text Word
}

// Word is a plain text terminal.
type Word struct {
	Text string
}

func (Argument) lineChild()      {}
func (Codeblock) lineChild()     {}
func (Codespan) lineChild()      {}
func (ColumnHeading) lineChild() {}
func (H1) lineChild()            {}
func (H2) lineChild()            {}
func (H3) lineChild()            {}
func (Keycode) lineChild()       {}
func (Optionlink) lineChild()    {}
func (Tag) lineChild()           {}
func (Taglink) lineChild()       {}
func (Url) lineChild()           {}
func (Word) lineChild()          {}

func (Codeblock) lineLiChild() {}

func (Argument) hChild()      {}
func (Codespan) hChild()      {}
func (Keycode) hChild()       {}
func (Optionlink) hChild()    {}
func (Tag) hChild()           {}
func (Taglink) hChild()       {}
func (Url) hChild()           {}
func (Word) hChild()          {}
