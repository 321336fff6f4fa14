package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCoverage(t *testing.T, text string, tokens []Token) {
	t.Helper()
	pos := 0
	for _, tok := range tokens {
		require.Equal(t, pos, tok.Start, "token %q starts off position", tok.Value)
		require.Greater(t, tok.End, tok.Start, "token %q has empty span", tok.Value)
		require.Equal(t, text[tok.Start:tok.End], tok.Value)
		pos = tok.End
	}
	require.Equal(t, len(text), pos, "tokens do not cover input")
}

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeCoverage(t *testing.T) {
	inputs := []string{
		"",
		"plain text only",
		"\\section{Intro}\nSome text $x+y$ here. % trailing note\n",
		"\\begin{abstract}\nWe study $\\alpha$-decay.\n\\end{abstract}",
		"$$\\int_0^1 f(x)\\,dx$$\n",
		"unmatched { brace and } stray",
		"dangling $math and \\",
		"tabs\t and \r\n mixed whitespace",
	}
	for _, input := range inputs {
		assertCoverage(t, input, Tokenize(input))
	}
}

func TestTokenizeKinds(t *testing.T) {
	t.Run("command with group", func(t *testing.T) {
		tokens := Tokenize("\\section{B}")
		require.Len(t, tokens, 2)
		assert.Equal(t, KindCommand, tokens[0].Kind)
		assert.Equal(t, "\\section", tokens[0].Value)
		assert.Equal(t, KindGroup, tokens[1].Kind)
		assert.Equal(t, "{B}", tokens[1].Value)
	})

	t.Run("starred command", func(t *testing.T) {
		tokens := Tokenize("\\section*{B}")
		assert.Equal(t, "\\section*", tokens[0].Value)
	})

	t.Run("environment markers", func(t *testing.T) {
		tokens := Tokenize("\\begin{itemize}\\end{itemize}")
		require.Len(t, tokens, 2)
		assert.Equal(t, []Kind{KindEnvironment, KindEnvironment}, kinds(tokens))

		name, begin := EnvironmentName(tokens[0])
		assert.Equal(t, "itemize", name)
		assert.True(t, begin)

		name, begin = EnvironmentName(tokens[1])
		assert.Equal(t, "itemize", name)
		assert.False(t, begin)
	})

	t.Run("inline and display math", func(t *testing.T) {
		tokens := Tokenize("$a+b$ and $$c$$")
		assert.Equal(t, []Kind{KindMath, KindWhitespace, KindText, KindWhitespace, KindMath}, kinds(tokens))
		assert.Equal(t, "$a+b$", tokens[0].Value)
		assert.Equal(t, "$$c$$", tokens[4].Value)
	})

	t.Run("comment runs to end of line", func(t *testing.T) {
		tokens := Tokenize("x % note\ny")
		assert.Equal(t, []Kind{KindText, KindWhitespace, KindComment, KindNewline, KindText}, kinds(tokens))
		assert.Equal(t, "% note", tokens[2].Value)
	})

	t.Run("escaped percent is a command", func(t *testing.T) {
		tokens := Tokenize("50\\% done")
		assert.Equal(t, KindCommand, tokens[1].Kind)
		assert.Equal(t, "\\%", tokens[1].Value)
	})
}

func TestTokenizeFallbacks(t *testing.T) {
	t.Run("unterminated brace", func(t *testing.T) {
		tokens := Tokenize("{abc")
		require.NotEmpty(t, tokens)
		assert.Equal(t, KindText, tokens[0].Kind)
		assert.Equal(t, "{", tokens[0].Value)
		assertCoverage(t, "{abc", tokens)
	})

	t.Run("unterminated math", func(t *testing.T) {
		tokens := Tokenize("$abc")
		assert.Equal(t, Token{Kind: KindText, Value: "$", Start: 0, End: 1}, tokens[0])
	})

	t.Run("stray closing brace", func(t *testing.T) {
		tokens := Tokenize("a}b")
		assert.Equal(t, []Kind{KindText, KindText, KindText}, kinds(tokens))
	})

	t.Run("trailing backslash", func(t *testing.T) {
		tokens := Tokenize("end\\")
		assert.Equal(t, Token{Kind: KindText, Value: "\\", Start: 3, End: 4}, tokens[1])
	})
}

func TestSectionMarker(t *testing.T) {
	cases := []struct {
		line    string
		section string
		ok      bool
	}{
		{"\\section{Results}", "Results", true},
		{"  \\subsection{Method Details}", "Method Details", true},
		{"\\section*{Unnumbered}", "Unnumbered", true},
		{"\\begin{abstract}", "abstract", true},
		{"\\end{abstract}", "", false},
		{"\\textbf{bold}", "", false},
		{"plain prose line", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		section, ok := SectionMarker(tc.line)
		assert.Equal(t, tc.ok, ok, "line %q", tc.line)
		assert.Equal(t, tc.section, section, "line %q", tc.line)
	}
}

func TestSafeSplitPoints(t *testing.T) {
	t.Run("plain newlines are safe", func(t *testing.T) {
		points := SafeSplitPoints("one\ntwo\nthree")
		assert.Equal(t, []int{4, 8}, points)
	})

	t.Run("open environment blocks splits", func(t *testing.T) {
		text := "\\begin{proof}\nstep\n\\end{proof}\nafter"
		points := SafeSplitPoints(text)
		// Only the newline after \end{proof} is safe.
		assert.Equal(t, []int{31}, points)
	})

	t.Run("stray open brace blocks splits", func(t *testing.T) {
		text := "a {\nb\n"
		assert.Empty(t, SafeSplitPoints(text))
	})
}
