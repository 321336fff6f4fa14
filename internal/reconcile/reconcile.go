// internal/reconcile/reconcile.go
package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"redline/internal/change"
)

var (
	// ErrAmbiguous marks a selection the line-splice strategy cannot apply
	// safely: overlapping changes or a change spanning multiple lines. The
	// caller receives the untouched original alongside this error.
	ErrAmbiguous = errors.New("ambiguous change selection")

	// ErrStaleChange marks an accepted id that matches no current change.
	ErrStaleChange = errors.New("stale change id")
)

// Reconstruct builds the output document from the original plus the accepted
// subset of changes. An empty selection returns the original; a selection
// covering every change returns the revised document. Anything else is
// applied as single-line splices against the original, bottom to top, so
// earlier splices cannot shift the positions of changes still to apply.
func Reconstruct(original, revised string, changes []change.Change, acceptedIDs map[string]bool) (string, error) {
	if len(acceptedIDs) == 0 {
		return original, nil
	}

	if stale := change.Stale(changes, setToSlice(acceptedIDs)); len(stale) > 0 {
		return original, fmt.Errorf("%w: %s", ErrStaleChange, strings.Join(stale, ", "))
	}

	accepted := make([]change.Change, 0, len(acceptedIDs))
	pos := make(map[string]int, len(acceptedIDs))
	for i, c := range changes {
		if acceptedIDs[c.ID] {
			pos[c.ID] = i
			accepted = append(accepted, c)
		}
	}
	if len(accepted) == len(changes) {
		return revised, nil
	}

	if err := checkSpliceable(accepted); err != nil {
		return original, err
	}

	lines := strings.Split(strings.TrimSuffix(original, "\n"), "\n")
	if original == "" {
		lines = nil
	}

	sort.Slice(accepted, func(i, j int) bool {
		if accepted[i].Range.Start != accepted[j].Range.Start {
			return accepted[i].Range.Start > accepted[j].Range.Start
		}
		// Insertions from one block share a start. The one later in
		// document order is applied first so the earlier one splices in
		// above it, preserving block order.
		return pos[accepted[i].ID] > pos[accepted[j].ID]
	})

	for _, c := range accepted {
		at := c.Range.Start
		switch c.Kind {
		case change.Added:
			if at > len(lines) {
				at = len(lines)
			}
			lines = append(lines[:at], append([]string{c.NewContent}, lines[at:]...)...)
		case change.Deleted:
			if at >= len(lines) {
				return original, fmt.Errorf("%w: %s points past the document", ErrStaleChange, c.ID)
			}
			lines = append(lines[:at], lines[at+1:]...)
		case change.Modified:
			if at >= len(lines) {
				return original, fmt.Errorf("%w: %s points past the document", ErrStaleChange, c.ID)
			}
			lines[at] = c.NewContent
		}
	}

	out := strings.Join(lines, "\n")
	if strings.HasSuffix(original, "\n") && out != "" {
		out += "\n"
	}
	return out, nil
}

// checkSpliceable rejects selections the splice strategy cannot honor:
// multi-line ranges and distinct edits competing for the same line.
// Insertions sharing a start are fine; an insertion block is single-line
// changes with one insertion point, ordered by the document.
func checkSpliceable(accepted []change.Change) error {
	starts := make(map[int]change.Change, len(accepted))
	for _, c := range accepted {
		if c.Range.End != c.Range.Start {
			return fmt.Errorf("%w: %s spans lines %d-%d", ErrAmbiguous, c.ID, c.Range.Start, c.Range.End)
		}
		other, ok := starts[c.Range.Start]
		if !ok {
			starts[c.Range.Start] = c
			continue
		}
		if c.Kind != change.Added || other.Kind != change.Added {
			return fmt.Errorf("%w: %s overlaps %s at line %d", ErrAmbiguous, c.ID, other.ID, c.Range.Start)
		}
	}
	return nil
}

func setToSlice(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
