package compiler

import (
	"strings"
	"testing"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Header
	}{
		{
			name: "all fields present",
			text: "Subject: Data Structures\nTotal Marks: 20\nTime: 3 hours\nQ1. Explain stacks.",
			want: Header{Subject: "Data Structures", TotalMarks: 20, TotalTime: 180},
		},
		{
			name: "maximum marks variant and minutes",
			text: "Subject: Physics\nMaximum Marks: 70\nTime: 90 minutes",
			want: Header{Subject: "Physics", TotalMarks: 70, TotalTime: 90},
		},
		{
			name: "missing fields use defaults",
			text: "Q1. Define gravity.",
			want: Header{Subject: DefaultSubject, TotalMarks: DefaultTotalMarks, TotalTime: DefaultTotalTime},
		},
		{
			name: "fields after the first question are ignored",
			text: "Subject: Math\nQ1. Derive it.\nTotal Marks: 999",
			want: Header{Subject: "Math", TotalMarks: DefaultTotalMarks, TotalTime: DefaultTotalTime},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHeader(tt.text, "")
			if got != tt.want {
				t.Errorf("ParseHeader() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// For any header containing "Total Marks: N", the extracted total must be N.
func TestParseHeaderTotalMarksValues(t *testing.T) {
	for _, n := range []string{"0", "5", "40", "100", "250"} {
		header := ParseHeader("Subject: X\nTotal Marks: "+n, "")
		if got := header.TotalMarks; got != atoiOrPanic(t, n) {
			t.Errorf("TotalMarks = %d, want %s", got, n)
		}
	}
}

func atoiOrPanic(t *testing.T, s string) int {
	t.Helper()
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func TestExtractQuestions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Question
	}{
		{
			name: "marks annotation removed from text",
			text: "Q1. Explain stacks. [10 marks]\nQ2. Define a queue. (5 M)",
			want: []Question{
				{Text: ". Explain stacks.", Marks: 10},
				{Text: ". Define a queue.", Marks: 5},
			},
		},
		{
			name: "numbered marker form",
			text: "Header line\n1. State the law. [2 marks]",
			want: []Question{
				{Text: "State the law.", Marks: 2},
			},
		},
		{
			name: "missing annotation defaults to zero",
			text: "Q.1 Discuss trees.",
			want: []Question{
				{Text: "Discuss trees.", Marks: 0},
			},
		},
		{
			name: "no question markers",
			text: "just a paragraph of prose",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractQuestions(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractQuestions() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("question %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"plain text",
		`quotes "inside" text`,
		`back\slash and \"mixed\"`,
		"multi\nline\ntext",
		`trailing backslash \`,
	}

	for _, input := range inputs {
		escaped := Escape(input)
		if strings.Contains(escaped, "\n") {
			t.Errorf("Escape(%q) contains a raw newline", input)
		}
		if got := Unescape(escaped); got != input {
			t.Errorf("Unescape(Escape(%q)) = %q", input, got)
		}
	}
}

func TestFormatMarkupZeroQuestions(t *testing.T) {
	header := Header{Subject: "Empty", TotalMarks: 100, TotalTime: 180, SyllabusRef: "syllabus.txt"}
	markup := FormatMarkup(header, nil)

	for _, tag := range []string{"[HEADER]", "[/HEADER]", "[QUESTION_LIST]", "[/QUESTION_LIST]"} {
		if !strings.Contains(markup, tag) {
			t.Errorf("markup missing %s:\n%s", tag, markup)
		}
	}
	if strings.Contains(markup, "[QUESTION]") {
		t.Errorf("markup should contain no QUESTION blocks:\n%s", markup)
	}
}

func TestBuildMarkup(t *testing.T) {
	clean := "Subject: Data Structures\nTotal Marks: 20\nQ1. Explain stacks. [10 marks]\nQ2. Define a queue. [10 marks]"
	header, markup := BuildMarkup(clean, "jobs/42/syllabus.txt")

	if header.Subject != "Data Structures" || header.TotalMarks != 20 {
		t.Errorf("header = %+v", header)
	}
	wantLines := []string{
		`SUBJECT: "Data Structures"`,
		"TOTAL_MARKS: 20",
		`SYLLABUS_PATH: "jobs/42/syllabus.txt"`,
		`Q_TEXT: ". Explain stacks."`,
		`Q_TEXT: ". Define a queue."`,
		"Q_MARKS: 10",
	}
	for _, line := range wantLines {
		if !strings.Contains(markup, line) {
			t.Errorf("markup missing %q:\n%s", line, markup)
		}
	}
}
