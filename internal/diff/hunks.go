// internal/diff/hunks.go
package diff

// groupHunks partitions the paired line list into context-bounded hunks.
// A hunk opens at the first changed line, looking back up to ContextLines of
// leading context, and closes once an unchanged run exceeds
// ContextLines+MinGap, keeping ContextLines of trailing context. Changed
// lines separated by a smaller gap share a hunk.
func groupHunks(lines []Line, cfg Config) []Hunk {
	n := len(lines)
	if n == 0 {
		return nil
	}

	// Effective left/right numbers per index so hunk boundaries on the
	// absent side of added/deleted lines resolve to the nearest position.
	effLeft := make([]int, n)
	effRight := make([]int, n)
	left, right := 0, 0
	for i, ln := range lines {
		if ln.LeftNum >= 0 {
			left = ln.LeftNum
		}
		if ln.RightNum >= 0 {
			right = ln.RightNum
		}
		effLeft[i], effRight[i] = left, right
	}

	var hunks []Hunk
	var ids []string
	open := false
	startIdx := 0
	lastChanged := 0
	prevEnd := -1
	unchanged := 0

	flush := func(endIdx int) {
		if endIdx > n-1 {
			endIdx = n - 1
		}
		hunks = append(hunks, Hunk{
			Start:     Boundary{Left: effLeft[startIdx], Right: effRight[startIdx]},
			End:       Boundary{Left: effLeft[endIdx], Right: effRight[endIdx]},
			ChangeIDs: ids,
		})
		prevEnd = endIdx
		ids = nil
		open = false
	}

	for i, ln := range lines {
		if ln.Kind == Unchanged {
			unchanged++
			if open && unchanged > cfg.ContextLines+cfg.MinGap {
				flush(lastChanged + cfg.ContextLines)
			}
			continue
		}
		if !open {
			lookback := unchanged
			if lookback > cfg.ContextLines {
				lookback = cfg.ContextLines
			}
			startIdx = i - lookback
			if startIdx <= prevEnd {
				startIdx = prevEnd + 1
			}
			open = true
		}
		unchanged = 0
		lastChanged = i
		if ln.ChangeID != "" {
			ids = append(ids, ln.ChangeID)
		}
	}
	if open {
		flush(lastChanged + cfg.ContextLines)
	}

	return hunks
}
