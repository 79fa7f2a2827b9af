// Package text holds the pure classification and transformation rules the
// renderers consult: blank and noise line detection, ignorable parse
// errors, URL punctuation cleanup, and indentation normalization. No
// function here carries state.
package text

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// "Type |gO| to see the table of contents" hint injected into help pages.
	tocRE = regexp.MustCompile(`Type .*gO.* to see the table of contents`)

	// Title line of traditional :help pages, e.g.
	// "NVIM REFERENCE MANUAL    by ..."
	titleLineRE = regexp.MustCompile(`^\s*N?VIM[ \t]*REFERENCE[ \t]*MANUAL`)

	// First line of traditional :help pages, e.g. "*api.txt*    Nvim".
	helpFirstLineRE = regexp.MustCompile(`\s*\*?[a-zA-Z]+\.txt\*?\s+N?[vV]im\s*$`)

	// Modeline, e.g. "vim:tw=78:ts=8:sw=4:sts=4:et:ft=help:norl:", and the
	// local-additions marker.
	modelineRE = regexp.MustCompile(`^\s*vim?:.*ft=help|^\s*vim?:.*filetype=help|[*>]local-additions[*<]`)
)

// Tag names known to trip the grammar without being real errors, keyed by
// the help file they appear in.
var excludeInvalid = map[string]string{
	"'previewpopup'":                        "quickref.txt",
	"'pvp'":                                 "quickref.txt",
	"'string'":                              "eval.txt",
	"Query":                                 "treesitter.txt",
	"eq?":                                   "treesitter.txt",
	"lsp-request":                           "lsp.txt",
	"matchit":                               "vim_diff.txt",
	"matchit.txt":                           "help.txt",
	"set!":                                  "treesitter.txt",
	"v:_null_blob":                          "builtin.txt",
	"v:_null_dict":                          "builtin.txt",
	"v:_null_list":                          "builtin.txt",
	"v:_null_string":                        "builtin.txt",
	"vim.lsp.buf_request()":                 "lsp.txt",
	"vim.lsp.util.get_progress_messages()":  "lsp.txt",
	"vim.treesitter.start()":                "treesitter.txt",
}

// IsBlank reports whether s consists entirely of tabs and spaces.
func IsBlank(s string) bool {
	for _, r := range s {
		if r != '\t' && r != ' ' {
			return false
		}
	}
	return true
}

// IsNoise reports whether s is help-file boilerplate (table-of-contents
// hint, title banner, traditional first line, modeline) that should be
// suppressed from rendered output.
func IsNoise(s string) bool {
	return tocRE.MatchString(s) ||
		titleLineRE.MatchString(s) ||
		helpFirstLineRE.MatchString(s) ||
		modelineRE.MatchString(s)
}

// IgnoreParseError reports whether a parse error should pass through as
// plain text. Unclosed backticks, quotes, bars and stars are common in
// help-file prose and are treated as plaintext by :help itself.
func IgnoreParseError(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	switch r {
	case '`', '\'', '|', '*':
		return true
	}
	return false
}

// IgnoreInvalid reports whether an invalid tag name is a known false
// positive.
func IgnoreInvalid(s string) bool {
	if _, ok := excludeInvalid[s]; ok {
		return true
	}
	return strings.Contains(s, "===") || strings.Contains(s, "---")
}

// FixURL splits off trailing punctuation that the grammar swallows into a
// URL: at most one trailing '.' and then at most one trailing ')', checked
// in that order. It returns the URL head and the trailing characters.
func FixURL(url string) (head, trailing string) {
	n := 0
	if strings.HasSuffix(url, ".") {
		n++
	}
	if strings.HasSuffix(url[:len(url)-n], ")") {
		n++
	}
	return url[:len(url)-n], url[len(url)-n:]
}

// TrimIndent expands tabs to tabWidth spaces, then removes the common
// leading-space count from every line.
func TrimIndent(s string, tabWidth int) string {
	expanded := strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
	lines := strings.Split(expanded, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	remove := -1
	for _, line := range lines {
		cnt := 0
		for cnt < len(line) && line[cnt] == ' ' {
			cnt++
		}
		if remove < 0 || cnt < remove {
			remove = cnt
		}
	}
	if remove <= 0 {
		return strings.Join(lines, "\n")
	}

	for i, line := range lines {
		if len(line) >= remove {
			lines[i] = line[remove:]
		} else {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

// Truncate returns the longest prefix of s that is at most n bytes and ends
// on a UTF-8 rune boundary.
func Truncate(s string, n int) string {
	if n >= len(s) {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
