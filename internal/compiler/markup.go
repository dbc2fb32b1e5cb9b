package compiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Defaults used when a header field cannot be extracted from the text.
const (
	DefaultSubject    = "Unknown Subject"
	DefaultTotalMarks = 100
	DefaultTotalTime  = 180
)

// Header carries the declared paper metadata extracted from the text before
// the first question marker. SyllabusRef is opaque: it is embedded verbatim
// into the markup document and never dereferenced here.
type Header struct {
	Subject     string `json:"subject"`
	TotalMarks  int    `json:"totalMarks"`
	TotalTime   int    `json:"totalTime"` // minutes
	SyllabusRef string `json:"syllabusRef"`
}

// Question is one segmented question before semantic annotation.
type Question struct {
	Text  string `json:"text"`
	Marks int    `json:"marks"`
}

var (
	reSubject    = regexp.MustCompile(`(?i)Subject:?\s*(.*)`)
	reTotalMarks = regexp.MustCompile(`(?i)(?:Total|Maximum)\s+Marks:?\s*(\d+)`)
	reTotalTime  = regexp.MustCompile(`(?i)Time:?\s*(\d+)\s*(hours?|minutes?)`)

	// A question starts at "Q1", "Q.1", "Q. 1" or "1. ". RE2 has no
	// lookahead, so segmentation splits on match offsets instead.
	reQuestionStart  = regexp.MustCompile(`(?i)Q\.?\s*\d+\b|\b\d+\.\s`)
	reQuestionMarker = regexp.MustCompile(`(?i)^(?:Q\.?\s*\d+\b|\d+\.\s*)`)

	// Embedded marks annotation, e.g. [10M], (10 Marks), [5 marks].
	reQuestionMarks = regexp.MustCompile(`(?i)[\[(](\d+)\s*(?:M|marks?)[\])]`)
)

// ParseHeader extracts subject, total marks and total time from the header
// block (the text before the first question marker). Missing fields fall
// back to defaults; a time given in hours is converted to minutes.
func ParseHeader(clean, syllabusRef string) Header {
	header := Header{
		Subject:     DefaultSubject,
		TotalMarks:  DefaultTotalMarks,
		TotalTime:   DefaultTotalTime,
		SyllabusRef: syllabusRef,
	}

	block := clean
	if loc := reQuestionStart.FindStringIndex(clean); loc != nil {
		block = clean[:loc[0]]
	}

	if m := reSubject.FindStringSubmatch(block); m != nil {
		header.Subject = strings.TrimSpace(m[1])
	}
	if m := reTotalMarks.FindStringSubmatch(block); m != nil {
		header.TotalMarks, _ = strconv.Atoi(m[1])
	}
	if m := reTotalTime.FindStringSubmatch(block); m != nil {
		value, _ := strconv.Atoi(m[1])
		if strings.Contains(strings.ToLower(m[2]), "hour") {
			value *= 60
		}
		header.TotalTime = value
	}

	return header
}

// ExtractQuestions segments the question block at each question-marker
// boundary, pulls the embedded marks annotation out of each segment and
// strips the leading marker. Texts are returned unescaped.
func ExtractQuestions(clean string) []Question {
	starts := reQuestionStart.FindAllStringIndex(clean, -1)
	if len(starts) == 0 {
		return nil
	}

	questions := make([]Question, 0, len(starts))
	for i, loc := range starts {
		end := len(clean)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		segment := strings.TrimSpace(clean[loc[0]:end])
		if segment == "" {
			continue
		}

		marks := 0
		if m := reQuestionMarks.FindStringSubmatch(segment); m != nil {
			marks, _ = strconv.Atoi(m[1])
			segment = strings.TrimSpace(reQuestionMarks.ReplaceAllString(segment, ""))
		}
		segment = strings.TrimSpace(reQuestionMarker.ReplaceAllString(segment, ""))

		questions = append(questions, Question{Text: segment, Marks: marks})
	}

	return questions
}

// Escape encodes a question text for literal embedding in a quoted markup
// field. Unescape reverses it exactly.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// Unescape decodes a markup string field produced by Escape.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			case '"':
				b.WriteByte('"')
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// FormatMarkup renders the intermediate markup document: one HEADER block
// with typed key-value fields and one QUESTION_LIST block with zero or more
// QUESTION blocks. The document is well-formed even with no questions.
func FormatMarkup(header Header, questions []Question) string {
	var b strings.Builder

	b.WriteString("[HEADER]\n")
	fmt.Fprintf(&b, "    SUBJECT: \"%s\"\n", Escape(header.Subject))
	fmt.Fprintf(&b, "    TOTAL_MARKS: %d\n", header.TotalMarks)
	fmt.Fprintf(&b, "    TOTAL_TIME: %d\n", header.TotalTime)
	fmt.Fprintf(&b, "    SYLLABUS_PATH: \"%s\"\n", Escape(header.SyllabusRef))
	b.WriteString("[/HEADER]\n")

	b.WriteString("[QUESTION_LIST]\n")
	for _, q := range questions {
		b.WriteString("    [QUESTION]\n")
		fmt.Fprintf(&b, "        Q_TEXT: \"%s\"\n", Escape(q.Text))
		fmt.Fprintf(&b, "        Q_MARKS: %d\n", q.Marks)
		b.WriteString("    [/QUESTION]\n")
	}
	b.WriteString("[/QUESTION_LIST]\n")

	return b.String()
}

// BuildMarkup runs header extraction and question segmentation over clean
// text and renders the markup document.
func BuildMarkup(clean, syllabusRef string) (Header, string) {
	header := ParseHeader(clean, syllabusRef)
	questions := ExtractQuestions(clean)
	return header, FormatMarkup(header, questions)
}
