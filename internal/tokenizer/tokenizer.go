// internal/tokenizer/tokenizer.go
package tokenizer

import "strings"

// Kind classifies an atomic structural unit of the markup.
type Kind string

const (
	KindCommand     Kind = "command"
	KindEnvironment Kind = "environment"
	KindMath        Kind = "math"
	KindComment     Kind = "comment"
	KindGroup       Kind = "group"
	KindWhitespace  Kind = "whitespace"
	KindNewline     Kind = "newline"
	KindText        Kind = "text"
)

// Token is a typed span of the input. Tokens partition the input with no
// gaps or overlaps; every span is non-empty.
type Token struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Tokenize scans text left to right into typed tokens. Unterminated
// constructs fall back to a one-character text token for the offending
// character, so scanning always makes progress.
func Tokenize(text string) []Token {
	var tokens []Token
	i := 0
	for i < len(text) {
		tok, ok := scanAt(text, i)
		if !ok {
			tok = Token{Kind: KindText, Value: text[i : i+1], Start: i, End: i + 1}
		}
		tokens = append(tokens, tok)
		i = tok.End
	}
	return tokens
}

func scanAt(text string, i int) (Token, bool) {
	switch text[i] {
	case '\\':
		if tok, ok := scanEnvironment(text, i); ok {
			return tok, true
		}
		return scanCommand(text, i)
	case '$':
		return scanMath(text, i)
	case '%':
		return scanComment(text, i), true
	case '{':
		return scanGroup(text, i)
	case '\n':
		return Token{Kind: KindNewline, Value: "\n", Start: i, End: i + 1}, true
	case ' ', '\t', '\r':
		return scanWhitespace(text, i), true
	case '}':
		// Unmatched closing brace; recover as plain text.
		return Token{}, false
	default:
		return scanText(text, i), true
	}
}

// scanEnvironment matches \begin{name} or \end{name} as one atomic token.
func scanEnvironment(text string, i int) (Token, bool) {
	for _, prefix := range []string{"\\begin{", "\\end{"} {
		if !strings.HasPrefix(text[i:], prefix) {
			continue
		}
		close := strings.IndexByte(text[i+len(prefix):], '}')
		if close < 0 {
			return Token{}, false
		}
		end := i + len(prefix) + close + 1
		return Token{Kind: KindEnvironment, Value: text[i:end], Start: i, End: end}, true
	}
	return Token{}, false
}

func scanCommand(text string, i int) (Token, bool) {
	j := i + 1
	for j < len(text) && isLetter(text[j]) {
		j++
	}
	if j == i+1 {
		// No letters: a control symbol like \% escapes one character.
		if j < len(text) {
			return Token{Kind: KindCommand, Value: text[i : j+1], Start: i, End: j + 1}, true
		}
		return Token{}, false
	}
	if j < len(text) && text[j] == '*' {
		j++
	}
	return Token{Kind: KindCommand, Value: text[i:j], Start: i, End: j}, true
}

func scanMath(text string, i int) (Token, bool) {
	if strings.HasPrefix(text[i:], "$$") {
		close := strings.Index(text[i+2:], "$$")
		if close < 0 {
			return Token{}, false
		}
		end := i + 2 + close + 2
		return Token{Kind: KindMath, Value: text[i:end], Start: i, End: end}, true
	}
	close := strings.IndexByte(text[i+1:], '$')
	if close < 0 {
		return Token{}, false
	}
	end := i + 1 + close + 1
	return Token{Kind: KindMath, Value: text[i:end], Start: i, End: end}, true
}

func scanComment(text string, i int) Token {
	j := strings.IndexByte(text[i:], '\n')
	end := len(text)
	if j >= 0 {
		end = i + j
	}
	return Token{Kind: KindComment, Value: text[i:end], Start: i, End: end}
}

// scanGroup matches a single-level {...} group. Nested braces are not
// balanced; the group closes at the first '}'.
func scanGroup(text string, i int) (Token, bool) {
	close := strings.IndexByte(text[i+1:], '}')
	if close < 0 {
		return Token{}, false
	}
	end := i + 1 + close + 1
	return Token{Kind: KindGroup, Value: text[i:end], Start: i, End: end}, true
}

func scanWhitespace(text string, i int) Token {
	j := i
	for j < len(text) && (text[j] == ' ' || text[j] == '\t' || text[j] == '\r') {
		j++
	}
	return Token{Kind: KindWhitespace, Value: text[i:j], Start: i, End: j}
}

func scanText(text string, i int) Token {
	j := i
	for j < len(text) && !isSpecial(text[j]) {
		j++
	}
	return Token{Kind: KindText, Value: text[i:j], Start: i, End: j}
}

func isSpecial(c byte) bool {
	switch c {
	case '\\', '$', '%', '{', '}', '\n', ' ', '\t', '\r':
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
