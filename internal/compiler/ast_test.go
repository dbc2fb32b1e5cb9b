package compiler

import (
	"strings"
	"testing"
)

func TestBuildASTPairsTextWithMarks(t *testing.T) {
	_, markup := BuildMarkup(
		"Subject: Data Structures\nTotal Marks: 20\nQ1. Explain stacks. [10 marks]\nQ2. Define a queue. [10 marks]",
		"",
	)
	nodes := BuildAST(Tokenize(markup))

	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].Marks != 10 || nodes[1].Marks != 10 {
		t.Errorf("marks = %d, %d, want 10, 10", nodes[0].Marks, nodes[1].Marks)
	}
	if !strings.Contains(nodes[0].Text, "Explain stacks.") {
		t.Errorf("node 0 text = %q", nodes[0].Text)
	}
	if !strings.Contains(nodes[1].Text, "Define a queue.") {
		t.Errorf("node 1 text = %q", nodes[1].Text)
	}
}

func TestBuildASTQuestionTextIsUnescaped(t *testing.T) {
	texts := []string{
		"line one\nwith \"quotes\" and \\slash",
		`ends with a "quote"`,
		`trailing backslash \`,
	}
	for _, text := range texts {
		markup := FormatMarkup(Header{Subject: "X"}, []Question{{Text: text, Marks: 3}})
		nodes := BuildAST(Tokenize(markup))

		if len(nodes) != 1 {
			t.Fatalf("got %d nodes, want 1", len(nodes))
		}
		if nodes[0].Text != text {
			t.Errorf("text = %q, want %q", nodes[0].Text, text)
		}
		if nodes[0].Marks != 3 {
			t.Errorf("marks = %d, want 3", nodes[0].Marks)
		}
	}
}

func TestBuildASTMissingMarksEmitsZero(t *testing.T) {
	tokens := []Token{
		{Kind: TokenQText, Value: `Q_TEXT: "first"`, Line: 1},
		{Kind: TokenQText, Value: `Q_TEXT: "second"`, Line: 2},
		{Kind: TokenQMarks, Value: "Q_MARKS: 7", Line: 3},
	}
	nodes := BuildAST(tokens)

	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].Text != "first" || nodes[0].Marks != 0 {
		t.Errorf("node 0 = %+v, want text 'first' with marks 0", nodes[0])
	}
	if nodes[1].Text != "second" || nodes[1].Marks != 7 {
		t.Errorf("node 1 = %+v, want text 'second' with marks 7", nodes[1])
	}
}

func TestBuildASTTrailingTextFlushes(t *testing.T) {
	tokens := []Token{
		{Kind: TokenQText, Value: `Q_TEXT: "dangling"`, Line: 1},
	}
	nodes := BuildAST(tokens)

	if len(nodes) != 1 || nodes[0].Text != "dangling" || nodes[0].Marks != 0 {
		t.Errorf("nodes = %+v, want one node 'dangling' with marks 0", nodes)
	}
}

func TestBuildASTSynthesizesNodeWhenEmpty(t *testing.T) {
	tokens := []Token{
		{Kind: TokenTag, Value: "[HEADER]", Line: 1},
		{Kind: TokenRaw, Value: "unstructured line one", Line: 2},
		{Kind: TokenRaw, Value: "unstructured line two", Line: 3},
		{Kind: TokenTag, Value: "[/HEADER]", Line: 4},
	}
	nodes := BuildAST(tokens)

	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want exactly 1 synthesized node", len(nodes))
	}
	if nodes[0].Marks != 0 {
		t.Errorf("synthesized marks = %d, want 0", nodes[0].Marks)
	}
	if want := "unstructured line one\nunstructured line two"; nodes[0].Text != want {
		t.Errorf("synthesized text = %q, want %q", nodes[0].Text, want)
	}
}

func TestBuildASTSynthesizedNodeIsLengthBounded(t *testing.T) {
	tokens := []Token{
		{Kind: TokenRaw, Value: strings.Repeat("x", 2*fallbackTextLimit), Line: 1},
	}
	nodes := BuildAST(tokens)

	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if got := len(nodes[0].Text); got != fallbackTextLimit {
		t.Errorf("synthesized text length = %d, want %d", got, fallbackTextLimit)
	}
}

func TestBuildASTNeverEmpty(t *testing.T) {
	if nodes := BuildAST(nil); len(nodes) != 1 {
		t.Errorf("BuildAST(nil) = %+v, want one synthesized node", nodes)
	}
}
