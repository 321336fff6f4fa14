// cmd/redline/render.go
package main

import (
	"fmt"
	"strings"

	"redline/internal/change"
	"redline/internal/diff"
	"redline/internal/tokenizer"

	"github.com/fatih/color"
)

var (
	headerColor   = color.New(color.FgCyan)
	addedColor    = color.New(color.FgGreen)
	deletedColor  = color.New(color.FgRed)
	emphAdded     = color.New(color.FgGreen, color.Bold, color.Underline)
	emphDeleted   = color.New(color.FgRed, color.Bold, color.Underline)
	acceptedMark  = color.New(color.FgGreen).SprintFunc()
	rejectedMark  = color.New(color.FgRed).SprintFunc()
	pendingMark   = color.New(color.FgYellow).SprintFunc()
	sectionHeader = color.New(color.FgMagenta).SprintFunc()
)

// renderResult prints each hunk with line numbers, colored change markers
// and the enclosing section heading for orientation.
func renderResult(result *diff.Result) {
	n := len(result.Lines)
	if n == 0 {
		return
	}

	effLeft := make([]int, n)
	effRight := make([]int, n)
	left, right := 0, 0
	for i, ln := range result.Lines {
		if ln.LeftNum >= 0 {
			left = ln.LeftNum
		}
		if ln.RightNum >= 0 {
			right = ln.RightNum
		}
		effLeft[i], effRight[i] = left, right
	}

	for _, hunk := range result.Hunks {
		headerColor.Printf("@@ -%d +%d @@", hunk.Start.Left+1, hunk.Start.Right+1)
		if section := sectionBefore(result.Lines, hunk.Start.Left); section != "" {
			fmt.Printf(" %s", sectionHeader(section))
		}
		fmt.Println()

		for i, ln := range result.Lines {
			if effLeft[i] < hunk.Start.Left || effLeft[i] > hunk.End.Left {
				continue
			}
			if effRight[i] < hunk.Start.Right || effRight[i] > hunk.End.Right {
				continue
			}
			renderLine(ln)
		}
		fmt.Println()
	}
}

// sectionBefore returns the nearest section heading at or above the given
// left line number.
func sectionBefore(lines []diff.Line, leftNum int) string {
	section := ""
	for _, ln := range lines {
		if ln.LeftNum >= 0 && ln.LeftNum > leftNum {
			break
		}
		content := ln.RightContent
		if ln.Kind == diff.Deleted {
			content = ln.LeftContent
		}
		if name, ok := tokenizer.SectionMarker(content); ok {
			section = name
		}
	}
	return section
}

func renderLine(ln diff.Line) {
	switch ln.Kind {
	case diff.Unchanged:
		fmt.Printf("%4d %4d   %s\n", ln.LeftNum+1, ln.RightNum+1, ln.LeftContent)
	case diff.Added:
		addedColor.Printf("     %4d + %s\n", ln.RightNum+1, ln.RightContent)
	case diff.Deleted:
		deletedColor.Printf("%4d      - %s\n", ln.LeftNum+1, ln.LeftContent)
	case diff.Modified:
		deletedColor.Printf("%4d      - ", ln.LeftNum+1)
		renderCharDiffs(ln.CharDiffs, diff.OpDelete)
		addedColor.Printf("     %4d + ", ln.RightNum+1)
		renderCharDiffs(ln.CharDiffs, diff.OpInsert)
	}
}

// renderCharDiffs prints one side of a modified line, emphasizing the
// fragments that differ.
func renderCharDiffs(diffs []diff.CharDiff, side diff.Op) {
	base, emph := deletedColor, emphDeleted
	if side == diff.OpInsert {
		base, emph = addedColor, emphAdded
	}
	for _, d := range diffs {
		switch d.Op {
		case diff.OpEqual:
			base.Print(d.Text)
		case side:
			emph.Print(d.Text)
		}
	}
	fmt.Println()
}

func printChanges(changes []change.Change) {
	if len(changes) == 0 {
		return
	}
	fmt.Println("\nChanges:")
	for _, c := range changes {
		mark := pendingMark("·")
		switch c.State {
		case change.Accepted:
			mark = acceptedMark("✓")
		case change.Rejected:
			mark = rejectedMark("✗")
		}

		location := fmt.Sprintf("line %d", c.Range.Start+1)
		if c.Section != "" {
			location += " in " + c.Section
		}
		fmt.Printf("  %s %s  %-8s %-24s %s\n", mark, c.ID, c.Kind, location, snippet(c))
	}
}

func snippet(c change.Change) string {
	content := c.NewContent
	if c.Kind == change.Deleted {
		content = c.OriginalContent
	}
	content = strings.ReplaceAll(content, "\n", " ")
	if len(content) > 60 {
		content = content[:57] + "..."
	}
	return content
}
