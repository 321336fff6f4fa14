// internal/diff/types.go
package diff

import "fmt"

// LineKind classifies a single line of the diff output.
type LineKind string

const (
	Unchanged LineKind = "unchanged"
	Added     LineKind = "added"
	Deleted   LineKind = "deleted"
	Modified  LineKind = "modified"
)

// Op identifies an edit-sequence operation.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// Operation is one step of an edit sequence. Concatenating the Text of all
// OpEqual+OpDelete operations reconstructs the left document; OpEqual+OpInsert
// reconstructs the right document.
type Operation struct {
	Op   Op
	Text string
}

// CharDiff is a character-level fragment inside a modified line.
type CharDiff struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// Line is one record of the line-level diff. LeftNum/RightNum are zero-based;
// -1 marks the absent side for added/deleted lines.
type Line struct {
	Kind         LineKind   `json:"kind"`
	LeftNum      int        `json:"left_num"`
	RightNum     int        `json:"right_num"`
	LeftContent  string     `json:"left_content,omitempty"`
	RightContent string     `json:"right_content,omitempty"`
	CharDiffs    []CharDiff `json:"char_diffs,omitempty"`
	ChangeID     string     `json:"change_id,omitempty"`
}

// Boundary is a position on both sides of the diff.
type Boundary struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// Hunk is a contiguous, context-bounded group of changed lines.
type Hunk struct {
	Start     Boundary `json:"start"`
	End       Boundary `json:"end"`
	ChangeIDs []string `json:"change_ids"`
}

// Stats counts the changed lines of a diff.
type Stats struct {
	Additions     int `json:"additions"`
	Deletions     int `json:"deletions"`
	Modifications int `json:"modifications"`
}

// Result is the complete diff between two document versions. A Result is
// immutable once published; recompute and replace it when either input
// changes.
type Result struct {
	Lines []Line `json:"lines"`
	Hunks []Hunk `json:"hunks"`
	Stats Stats  `json:"stats"`
}

// Summary returns a short human-readable change count.
func (r *Result) Summary() string {
	if r.Stats.Additions == 0 && r.Stats.Deletions == 0 && r.Stats.Modifications == 0 {
		return "No changes"
	}
	return fmt.Sprintf("+%d -%d ~%d", r.Stats.Additions, r.Stats.Deletions, r.Stats.Modifications)
}
