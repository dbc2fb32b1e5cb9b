package compiler

import "strings"

// Difficulty of one question, derived from keyword classification.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Crispness is the clarity/conciseness classification of a question's text.
type Crispness string

const (
	CrispnessCrisp     Crispness = "CRISP"
	CrispnessVerbose   Crispness = "VERBOSE"
	CrispnessAmbiguous Crispness = "AMBIGUOUS"
)

// QuestionNode is one exam question with its derived attributes. Text and
// Marks come from the AST builder; the semantic analyzer fills in the rest.
type QuestionNode struct {
	Text          string     `json:"text"`
	Marks         int        `json:"marks"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	Crispness     Crispness  `json:"crispness,omitempty"`
	EstimatedTime int        `json:"estimatedTime,omitempty"`
	SyllabusTopic string     `json:"syllabusTopic,omitempty"`
}

// fallbackTextLimit bounds the synthesized node when no question could be
// extracted from the token stream.
const fallbackTextLimit = 800

// BuildAST folds the token stream into an ordered question list using a
// two-state accumulator: a Q_TEXT token stores the pending text, the
// following Q_MARKS token supplies the marks and emits the node. A Q_TEXT
// arriving while marks are still pending flushes the previous node with
// marks 0, as does pending text left at end of stream. The result is never
// empty: with no emitted node, exactly one is synthesized from the RAW and
// Q_TEXT token values.
func BuildAST(tokens []Token) []QuestionNode {
	var nodes []QuestionNode
	pendingText := ""
	awaitingMarks := false

	flush := func(marks int) {
		nodes = append(nodes, QuestionNode{Text: pendingText, Marks: marks})
		pendingText = ""
		awaitingMarks = false
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenQText:
			if awaitingMarks {
				flush(0)
			}
			pendingText = questionTextValue(tok.Value)
			awaitingMarks = true
		case TokenQMarks:
			if awaitingMarks {
				flush(parseDigits(tok.Value))
			}
		}
	}
	if awaitingMarks {
		flush(0)
	}

	if len(nodes) == 0 {
		nodes = []QuestionNode{synthesizeNode(tokens)}
	}

	return nodes
}

// questionTextValue strips the Q_TEXT label and surrounding quotes and
// decodes the markup escapes.
func questionTextValue(value string) string {
	if _, rest, ok := strings.Cut(value, ":"); ok {
		value = rest
	}
	value = strings.TrimSpace(value)
	// Exactly one quote on each side: trimming a run would eat an escaped
	// quote at the end of the text and break the round-trip.
	if strings.HasPrefix(value, `"`) {
		value = value[1:]
	}
	if strings.HasSuffix(value, `"`) {
		value = value[:len(value)-1]
	}
	return Unescape(value)
}

func parseDigits(value string) int {
	n := 0
	seen := false
	for _, r := range value {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			seen = true
		}
	}
	if !seen {
		return 0
	}
	return n
}

func synthesizeNode(tokens []Token) QuestionNode {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == TokenRaw || tok.Kind == TokenQText {
			parts = append(parts, tok.Value)
		}
	}
	text := strings.Join(parts, "\n")
	if runes := []rune(text); len(runes) > fallbackTextLimit {
		text = string(runes[:fallbackTextLimit])
	}
	return QuestionNode{Text: text, Marks: 0}
}
