// internal/diff/convert.go
package diff

import "strings"

// convertState is the accumulator for the operation-to-line fold. Counters
// are zero-based and advance independently per side.
type convertState struct {
	leftLine  int
	rightLine int
	lines     []Line
}

// convert folds a line-aligned edit sequence into per-line diff records.
// Each step consumes one Operation and returns the advanced state, so the
// conversion can be exercised step by step.
func convert(ops []Operation) []Line {
	st := convertState{}
	for _, op := range ops {
		st = st.step(op)
	}
	return st.lines
}

func (st convertState) step(op Operation) convertState {
	segments := strings.Split(op.Text, "\n")
	for i, seg := range segments {
		last := i == len(segments)-1
		if last && seg == "" {
			// Trailing empty segment after the final newline; emitting it
			// would fabricate a blank line.
			break
		}
		switch op.Op {
		case OpEqual:
			st.lines = append(st.lines, Line{
				Kind:         Unchanged,
				LeftNum:      st.leftLine,
				RightNum:     st.rightLine,
				LeftContent:  seg,
				RightContent: seg,
			})
			if !last {
				st.leftLine++
				st.rightLine++
			}
		case OpDelete:
			st.lines = append(st.lines, Line{
				Kind:        Deleted,
				LeftNum:     st.leftLine,
				RightNum:    -1,
				LeftContent: seg,
			})
			if !last {
				st.leftLine++
			}
		case OpInsert:
			st.lines = append(st.lines, Line{
				Kind:         Added,
				LeftNum:      -1,
				RightNum:     st.rightLine,
				RightContent: seg,
			})
			if !last {
				st.rightLine++
			}
		}
	}
	return st
}
