// internal/diff/sequence.go
package diff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Sequencer produces edit sequences between two strings. Any implementation
// must satisfy the reconstruction invariant on Operation; the default is
// backed by diff-match-patch.
type Sequencer interface {
	// DiffLines returns an edit sequence whose fragments are whole lines,
	// each terminated by '\n' except possibly the final line of a document.
	DiffLines(a, b string) []Operation

	// DiffChars returns a character-level edit sequence with semantic
	// cleanup applied, suitable for in-line highlighting.
	DiffChars(a, b string) []Operation
}

type dmpSequencer struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewSequencer returns the default diff-match-patch backed Sequencer.
func NewSequencer() Sequencer {
	return &dmpSequencer{dmp: diffmatchpatch.New()}
}

func (s *dmpSequencer) DiffLines(a, b string) []Operation {
	// Diff on line granularity: encode each distinct line as a rune, diff
	// the rune strings, then map fragments back to the original lines.
	rOld, rNew, lineArray := s.dmp.DiffLinesToRunes(a, b)
	diffs := s.dmp.DiffMainRunes(rOld, rNew, false)
	diffs = s.dmp.DiffCleanupMerge(diffs)

	decode := func(encoded string) string {
		var out []byte
		for _, r := range encoded {
			idx := int(r)
			if idx >= 0 && idx < len(lineArray) {
				out = append(out, lineArray[idx]...)
			}
		}
		return string(out)
	}

	ops := make([]Operation, 0, len(diffs))
	for _, d := range diffs {
		text := decode(d.Text)
		if text == "" {
			continue
		}
		ops = append(ops, Operation{Op: opFromDMP(d.Type), Text: text})
	}
	return ops
}

func (s *dmpSequencer) DiffChars(a, b string) []Operation {
	diffs := s.dmp.DiffMain(a, b, false)
	diffs = s.dmp.DiffCleanupSemantic(diffs)

	ops := make([]Operation, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		ops = append(ops, Operation{Op: opFromDMP(d.Type), Text: d.Text})
	}
	return ops
}

func opFromDMP(t diffmatchpatch.Operation) Op {
	switch t {
	case diffmatchpatch.DiffInsert:
		return OpInsert
	case diffmatchpatch.DiffDelete:
		return OpDelete
	default:
		return OpEqual
	}
}
