package cpu

// Label is a label declaration or reference.
type Label struct {
	Name     string // Upper case name.
	Position int    // Output position of the declared or patched word.
	LineNo   int    // Source line of the opening '.' or '('.
	Column   int

	HasDefault bool   // Declarations only: a default value was assigned.
	Default    uint16 // Declarations only: the word emitted by the default.
}

// Resolve adds the position of each reference's declaration to the word at
// the reference's position.
//
// A reference matched by two declarations fails with
// ASM_ERR_DUPLICATE_DECLARATION. Duplicate declarations that are never
// referenced are not detected. Any reference left unmatched fails with
// ASM_ERR_UNRESOLVED_REFERENCE. Neither failure has a source location.
// A referenced declaration past the end of memory fails with
// ASM_ERR_PROGRAM_TOO_LARGE at the declaration.
func Resolve(words []uint16, decls []Label, refs []Label) (err error) {
	matched := make([]bool, len(refs))

	for _, decl := range decls {
		for n, ref := range refs {
			if len(ref.Name) != len(decl.Name) || ref.Name != decl.Name {
				continue
			}
			if matched[n] {
				err = &ErrSyntax{Kind: ASM_ERR_DUPLICATE_DECLARATION}
				return
			}
			if decl.Position >= MEMORY_SIZE {
				err = &ErrSyntax{
					Kind:   ASM_ERR_PROGRAM_TOO_LARGE,
					LineNo: decl.LineNo,
					Column: decl.Column,
				}
				return
			}
			words[ref.Position] += uint16(decl.Position)
			matched[n] = true
		}
	}

	for n := range refs {
		if !matched[n] {
			err = &ErrSyntax{Kind: ASM_ERR_UNRESOLVED_REFERENCE}
			return
		}
	}

	return
}
