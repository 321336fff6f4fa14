// internal/change/builder.go
package change

import (
	"redline/internal/diff"
	"redline/internal/tokenizer"
)

// Build assembles reviewable changes from a computed diff. Each changed line
// becomes one Change in document order, tagged with the semantic section it
// falls under. Line ranges are in original-document coordinates; for added
// lines the range start is the insertion point between original lines.
func Build(result *diff.Result) []Change {
	var changes []Change
	section := ""
	nextLeft := 0

	for _, line := range result.Lines {
		content := line.RightContent
		if line.RightNum < 0 {
			content = line.LeftContent
		}
		if marker, ok := tokenizer.SectionMarker(content); ok {
			section = marker
		}

		switch line.Kind {
		case diff.Added:
			changes = append(changes, Change{
				ID:         line.ChangeID,
				Kind:       Added,
				Section:    section,
				NewContent: line.RightContent,
				Range:      LineRange{Start: nextLeft, End: nextLeft},
				State:      Pending,
			})
		case diff.Deleted:
			changes = append(changes, Change{
				ID:              line.ChangeID,
				Kind:            Deleted,
				Section:         section,
				OriginalContent: line.LeftContent,
				Range:           LineRange{Start: line.LeftNum, End: line.LeftNum},
				State:           Pending,
			})
		case diff.Modified:
			changes = append(changes, Change{
				ID:              line.ChangeID,
				Kind:            Modified,
				Section:         section,
				OriginalContent: line.LeftContent,
				NewContent:      line.RightContent,
				Range:           LineRange{Start: line.LeftNum, End: line.LeftNum},
				State:           Pending,
			})
		}

		if line.LeftNum >= 0 {
			nextLeft = line.LeftNum + 1
		}
	}
	return changes
}
