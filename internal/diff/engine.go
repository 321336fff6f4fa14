// internal/diff/engine.go
package diff

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Config bounds hunk grouping. Immutable per diff run.
type Config struct {
	// ContextLines is the number of unchanged lines kept around a hunk.
	ContextLines int `json:"context_lines"`
	// MinGap is the extra unchanged-line distance required before two
	// change groups split into separate hunks.
	MinGap int `json:"min_gap"`
}

// DefaultConfig returns the standard grouping window.
func DefaultConfig() Config {
	return Config{ContextLines: 3, MinGap: 5}
}

// Engine computes line-level diffs between two document versions.
type Engine struct {
	cfg Config
	seq Sequencer
}

// NewEngine creates an engine with the given grouping config and the default
// edit-sequence primitive.
func NewEngine(cfg Config) *Engine {
	return NewEngineWithSequencer(cfg, NewSequencer())
}

// NewEngineWithSequencer creates an engine backed by a caller-supplied
// edit-sequence primitive.
func NewEngineWithSequencer(cfg Config, seq Sequencer) *Engine {
	if cfg.ContextLines < 0 {
		cfg.ContextLines = 0
	}
	if cfg.MinGap < 0 {
		cfg.MinGap = 0
	}
	return &Engine{cfg: cfg, seq: seq}
}

// Compare diffs original against revised and returns an immutable Result.
func (e *Engine) Compare(original, revised string) *Result {
	// Line-mode diffing treats "text" and "text\n" as distinct line units.
	// Normalize the final line so appending after an unterminated document
	// does not misreport that line as changed. Line records never carry the
	// terminator, so the output is unaffected.
	ops := e.seq.DiffLines(ensureTrailingNewline(original), ensureTrailingNewline(revised))
	lines := convert(ops)
	lines = pairModified(lines, e.seq)

	result := &Result{Lines: lines}
	for i := range result.Lines {
		switch result.Lines[i].Kind {
		case Added:
			result.Stats.Additions++
		case Deleted:
			result.Stats.Deletions++
		case Modified:
			result.Stats.Modifications++
		default:
			continue
		}
		result.Lines[i].ChangeID = changeID(result.Lines[i])
	}

	result.Hunks = groupHunks(result.Lines, e.cfg)
	return result
}

func ensureTrailingNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}

// changeID derives a stable identifier from a line's content and position,
// so re-diffing after an unrelated edit keeps untouched ids stable.
func changeID(l Line) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d|%s|%s",
		l.Kind, l.LeftNum, l.RightNum, l.LeftContent, l.RightContent)))
	return hex.EncodeToString(sum[:])[:16]
}
