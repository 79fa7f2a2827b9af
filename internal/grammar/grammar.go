// Package grammar binds the external tree-sitter-vimdoc grammar. The
// grammar is a separate C library; this package only bridges its exported
// language function into a tree-sitter Language value, keeping the
// tokenizer itself outside this module.
package grammar

// extern const void *tree_sitter_vimdoc();
// #cgo LDFLAGS: -ltree-sitter-vimdoc
import "C"

import (
	"unsafe"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language returns the vimdoc grammar.
func Language() *sitter.Language {
	return sitter.NewLanguage(unsafe.Pointer(C.tree_sitter_vimdoc()))
}
