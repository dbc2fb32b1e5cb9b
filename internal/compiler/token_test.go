package compiler

import (
	"reflect"
	"testing"
)

func TestTokenizeClassification(t *testing.T) {
	tests := []struct {
		line string
		want TokenKind
	}{
		{"[HEADER]", TokenTag},
		{"[/HEADER]", TokenTag},
		{"[QUESTION_LIST]", TokenTag},
		{"[/QUESTION_LIST]", TokenTag},
		{"[QUESTION]", TokenTag},
		{"[/QUESTION]", TokenTag},
		{`SUBJECT: "Physics"`, TokenSubject},
		{`subject: "lowercase still matches"`, TokenSubject},
		{"TOTAL_MARKS: 100", TokenTotalMarks},
		{`Q_TEXT: "Define a queue."`, TokenQText},
		{"Q_MARKS: 10", TokenQMarks},
		{"TOTAL_TIME: 180", TokenRaw},
		{`SYLLABUS_PATH: "syllabus.txt"`, TokenRaw},
		{"anything else at all", TokenRaw},
	}

	for _, tt := range tests {
		tokens := Tokenize(tt.line)
		if len(tokens) != 1 {
			t.Fatalf("Tokenize(%q) produced %d tokens", tt.line, len(tokens))
		}
		if tokens[0].Kind != tt.want {
			t.Errorf("Tokenize(%q) kind = %s, want %s", tt.line, tokens[0].Kind, tt.want)
		}
		if tokens[0].Value != tt.line {
			t.Errorf("Tokenize(%q) value = %q, want verbatim content", tt.line, tokens[0].Value)
		}
	}
}

func TestTokenizeSkipsBlankLinesAndKeepsLineNumbers(t *testing.T) {
	markup := "[HEADER]\n\n    SUBJECT: \"X\"\n\n[/HEADER]"
	got := Tokenize(markup)

	want := []Token{
		{Kind: TokenTag, Value: "[HEADER]", Line: 1},
		{Kind: TokenSubject, Value: `SUBJECT: "X"`, Line: 3},
		{Kind: TokenTag, Value: "[/HEADER]", Line: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %+v, want %+v", got, want)
	}
}

// Tokenize is a pure function over an immutable document: repeated runs
// yield the same sequence.
func TestTokenizeIsRestartable(t *testing.T) {
	_, markup := BuildMarkup("Subject: X\nQ1. Define a set. [2 marks]", "")
	first := Tokenize(markup)
	second := Tokenize(markup)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated tokenization differs:\n%v\n%v", first, second)
	}
}
