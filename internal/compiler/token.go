package compiler

import "strings"

// TokenKind classifies one markup line.
type TokenKind string

const (
	TokenTag        TokenKind = "TAG"
	TokenSubject    TokenKind = "SUBJECT"
	TokenTotalMarks TokenKind = "TOTAL_MARKS"
	TokenQText      TokenKind = "Q_TEXT"
	TokenQMarks     TokenKind = "Q_MARKS"
	TokenRaw        TokenKind = "RAW"
)

// Token is one classified markup line. Value holds the trimmed line
// verbatim; Line is the 1-based line number in the markup document.
type Token struct {
	Kind  TokenKind `json:"kind"`
	Value string    `json:"value"`
	Line  int       `json:"line"`
}

var structuralTags = map[string]struct{}{
	"[HEADER]":         {},
	"[/HEADER]":        {},
	"[QUESTION_LIST]":  {},
	"[/QUESTION_LIST]": {},
	"[QUESTION]":       {},
	"[/QUESTION]":      {},
}

// Tokenize converts a markup document into an ordered token list, one token
// per non-blank line. It is total: a line that matches nothing becomes a RAW
// token carrying the verbatim content.
func Tokenize(markup string) []Token {
	lines := strings.Split(markup, "\n")
	tokens := make([]Token, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		tokens = append(tokens, Token{
			Kind:  classifyLine(trimmed),
			Value: trimmed,
			Line:  i + 1,
		})
	}

	return tokens
}

func classifyLine(line string) TokenKind {
	upper := strings.ToUpper(line)

	if _, ok := structuralTags[upper]; ok {
		return TokenTag
	}

	switch {
	case strings.HasPrefix(upper, "SUBJECT:"):
		return TokenSubject
	case strings.HasPrefix(upper, "TOTAL_MARKS:"):
		return TokenTotalMarks
	case strings.HasPrefix(upper, "Q_TEXT"):
		return TokenQText
	case strings.HasPrefix(upper, "Q_MARKS"):
		return TokenQMarks
	default:
		return TokenRaw
	}
}
