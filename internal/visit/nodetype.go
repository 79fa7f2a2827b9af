package visit

// NodeType enumerates the node kinds of the vimdoc grammar.
type NodeType int

const (
	Argument NodeType = iota
	Block
	Code
	Codeblock
	Codespan
	ColumnHeading
	H1
	H2
	H3
	HelpFile
	Keycode
	Language
	Line
	LineLi
	Optionlink
	Tag
	Taglink
	UppercaseName
	Url
	Word
)

var nodeTypeNames = map[NodeType]string{
	Argument:      "argument",
	Block:         "block",
	Code:          "code",
	Codeblock:     "codeblock",
	Codespan:      "codespan",
	ColumnHeading: "column_heading",
	H1:            "h1",
	H2:            "h2",
	H3:            "h3",
	HelpFile:      "help_file",
	Keycode:       "keycode",
	Language:      "language",
	Line:          "line",
	LineLi:        "line_li",
	Optionlink:    "optionlink",
	Tag:           "tag",
	Taglink:       "taglink",
	UppercaseName: "uppercase_name",
	Url:           "url",
	Word:          "word",
}

var nodeTypesByKind = func() map[string]NodeType {
	m := make(map[string]NodeType, len(nodeTypeNames))
	for t, name := range nodeTypeNames {
		m[name] = t
	}
	return m
}()

func (t NodeType) String() string { return nodeTypeNames[t] }

// ParseNodeType maps a CST kind string to its NodeType; ok is false for
// kinds outside the vimdoc vocabulary (anonymous tokens, ERROR nodes).
func ParseNodeType(kind string) (NodeType, bool) {
	t, ok := nodeTypesByKind[kind]
	return t, ok
}
