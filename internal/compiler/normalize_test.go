package compiler

import (
	"errors"
	"testing"
)

func TestNormalizeRejectsEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t \n"} {
		if _, err := Normalize(input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Normalize(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unifies line terminators",
			input: "first\r\nsecond\rthird",
			want:  "first\nsecond\nthird",
		},
		{
			name:  "rejoins hyphen-broken words",
			input: "comp-\niler design",
			want:  "compiler design",
		},
		{
			name:  "fixes digit-O confusables",
			input: "marks are 1O1 and [1O]",
			want:  "marks are 101 and [10]",
		},
		{
			name:  "fixes bracketed l confusables",
			input: "worth [l] mark and (l) mark",
			want:  "worth [1] mark and (1) mark",
		},
		{
			name:  "trims and collapses whitespace",
			input: "  a    question   \n\n\n  another one ",
			want:  "a question\nanother one",
		},
		{
			name:  "breaks before header keywords",
			input: "Some Paper Subject: Physics Total Marks: 50",
			want:  "Some Paper\nSubject: Physics\nTotal Marks: 50",
		},
		{
			name:  "keyword already at line start is untouched",
			input: "Subject: Physics\nTotal Marks: 50",
			want:  "Subject: Physics\nTotal Marks: 50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Normalizing already-normalized text must be a fixed point.
func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Subject: Data Structures\r\nTotal Marks: 20\nQ1. Explain com-\npilers. [10 marks]",
		"Exam 2024 Subject: Chemistry Time: 3 hours",
		"plain text without any structure",
	}

	for _, input := range inputs {
		once, err := Normalize(input)
		if err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize() second pass error = %v", err)
		}
		if once != twice {
			t.Errorf("Normalize not idempotent:\nfirst  = %q\nsecond = %q", once, twice)
		}
	}
}
