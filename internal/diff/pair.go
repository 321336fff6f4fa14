// internal/diff/pair.go
package diff

// pairModified merges a deleted line immediately followed by an added line
// into a single modified record with character-level sub-diffs. Pairing is
// greedy and strictly adjacent: a deleted/added pair separated by anything
// else is left as separate records. This is a heuristic, not an alignment
// algorithm; a replacement far from its original shows as an add plus a
// delete.
func pairModified(lines []Line, seq Sequencer) []Line {
	out := make([]Line, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if lines[i].Kind == Deleted && i+1 < len(lines) && lines[i+1].Kind == Added {
			del, add := lines[i], lines[i+1]
			out = append(out, Line{
				Kind:         Modified,
				LeftNum:      del.LeftNum,
				RightNum:     add.RightNum,
				LeftContent:  del.LeftContent,
				RightContent: add.RightContent,
				CharDiffs:    charDiffs(seq, del.LeftContent, add.RightContent),
			})
			i++
			continue
		}
		out = append(out, lines[i])
	}
	return out
}

func charDiffs(seq Sequencer, left, right string) []CharDiff {
	ops := seq.DiffChars(left, right)
	diffs := make([]CharDiff, 0, len(ops))
	for _, op := range ops {
		diffs = append(diffs, CharDiff{Op: op.Op, Text: op.Text})
	}
	return diffs
}
