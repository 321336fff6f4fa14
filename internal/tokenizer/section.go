// internal/tokenizer/section.go
package tokenizer

import "strings"

// sectioning commands whose argument names the section a line introduces.
var sectionCommands = map[string]bool{
	"\\part":          true,
	"\\chapter":       true,
	"\\section":       true,
	"\\subsection":    true,
	"\\subsubsection": true,
	"\\paragraph":     true,
	"\\title":         true,
}

// structural environments that open a named section of the document.
var sectionEnvironments = map[string]bool{
	"abstract":        true,
	"acknowledgments": true,
	"appendix":        true,
}

// SectionMarker reports the section heading a line introduces, if any.
// `\section{Results}` yields "Results"; `\begin{abstract}` yields "abstract".
func SectionMarker(line string) (string, bool) {
	tokens := Tokenize(line)
	for i, tok := range tokens {
		switch tok.Kind {
		case KindWhitespace:
			continue
		case KindCommand:
			name := strings.TrimSuffix(tok.Value, "*")
			if !sectionCommands[name] {
				return "", false
			}
			for _, next := range tokens[i+1:] {
				switch next.Kind {
				case KindWhitespace:
					continue
				case KindGroup:
					return strings.Trim(next.Value, "{}"), true
				default:
					return "", false
				}
			}
			return "", false
		case KindEnvironment:
			name, begin := EnvironmentName(tok)
			if begin && sectionEnvironments[name] {
				return name, true
			}
			return "", false
		default:
			return "", false
		}
	}
	return "", false
}

// EnvironmentName extracts the name from an environment token and reports
// whether it is a \begin marker.
func EnvironmentName(tok Token) (string, bool) {
	if tok.Kind != KindEnvironment {
		return "", false
	}
	open := strings.IndexByte(tok.Value, '{')
	if open < 0 || !strings.HasSuffix(tok.Value, "}") {
		return "", false
	}
	return tok.Value[open+1 : len(tok.Value)-1], strings.HasPrefix(tok.Value, "\\begin")
}

// SafeSplitPoints returns the offsets just after each newline at which the
// text can be split without tearing a structural unit: brace depth is zero
// and no environment is open.
func SafeSplitPoints(text string) []int {
	var points []int
	braces, envs := 0, 0
	for _, tok := range Tokenize(text) {
		switch tok.Kind {
		case KindEnvironment:
			if _, begin := EnvironmentName(tok); begin {
				envs++
			} else if envs > 0 {
				envs--
			}
		case KindText:
			// Matched groups are atomic tokens; stray braces surface here.
			switch tok.Value {
			case "{":
				braces++
			case "}":
				if braces > 0 {
					braces--
				}
			}
		case KindNewline:
			if braces == 0 && envs == 0 {
				points = append(points, tok.End)
			}
		}
	}
	return points
}
