package compiler

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyInput is the only hard failure of the pipeline. Everything after
// normalization degrades to defaults instead of returning errors, because
// the text comes from noisy upstream recognition.
var ErrEmptyInput = errors.New("empty text provided for analysis")

var (
	reHyphenBreak = regexp.MustCompile(`(\w+)-\s*\n\s*(\w+)`)
	reSpaceRun    = regexp.MustCompile(` +`)

	// OCR confusable corrections in numeric contexts, e.g. 1O1 -> 101,
	// 1O] -> 10], [l] -> [1], (l) -> (1).
	reDigitODigit = regexp.MustCompile(`(\d)O(\d)`)
	reDigitOClose = regexp.MustCompile(`(\d)O([)\]])`)
	reBracketL    = regexp.MustCompile(`\[l\]`)
	reParenL      = regexp.MustCompile(`\(l\)`)
)

// headerKeywordPatterns re-insert a line break before header fields that OCR
// tends to join onto the previous line.
var headerKeywordPatterns = compileHeaderKeywords([]string{
	"Time", "Total Marks", "Maximum Marks", "Syllabus",
	"Subject", "Course", "Exam", "Date",
})

func compileHeaderKeywords(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		patterns = append(patterns, regexp.MustCompile(`(?i)([^\n])(`+kw+`)`))
	}
	return patterns
}

// Normalize cleans raw recognized text into canonical line-oriented form:
// unified line terminators, rejoined hyphen-broken words, corrected OCR
// confusables, trimmed lines with collapsed whitespace and no blanks, and a
// line break before each header keyword. Running it on already-normalized
// text is a no-op.
func Normalize(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyInput
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Join words hyphenated across lines, e.g. "comp-\niler" -> "compiler".
	text = reHyphenBreak.ReplaceAllString(text, "$1$2")

	text = fixOCRConfusables(text)

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = reSpaceRun.ReplaceAllString(line, " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	text = strings.Join(cleaned, "\n")

	text = breakBeforeHeaderKeywords(text)

	return text, nil
}

func fixOCRConfusables(text string) string {
	text = reDigitODigit.ReplaceAllString(text, "${1}0${2}")
	text = reDigitOClose.ReplaceAllString(text, "${1}0${2}")
	text = reBracketL.ReplaceAllString(text, "[1]")
	text = reParenL.ReplaceAllString(text, "(1)")
	return text
}

func breakBeforeHeaderKeywords(text string) string {
	for _, pattern := range headerKeywordPatterns {
		text = pattern.ReplaceAllString(text, "$1\n$2")
	}
	// Splitting a keyword off can leave a trailing space on the previous
	// line; trim so the output is a fixed point of Normalize.
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
