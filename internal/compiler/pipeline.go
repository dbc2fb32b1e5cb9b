package compiler

// Input is one analysis job's text snapshot. SyllabusText feeds the coverage
// check; SyllabusRef is an opaque reference embedded into the markup header
// and never dereferenced.
type Input struct {
	RawText      string
	SyllabusText string
	SyllabusRef  string
}

// Options configures a pipeline run. There is no ambient configuration: the
// caller passes everything explicitly.
type Options struct {
	Thresholds Thresholds
}

// DefaultOptions returns the options used when the caller has no tuned
// thresholds of its own.
func DefaultOptions() Options {
	return Options{Thresholds: DefaultThresholds()}
}

// Result holds every intermediate artifact of one run, so callers can expose
// or persist any stage's output.
type Result struct {
	CleanText       string
	Header          Header
	Markup          string
	Tokens          []Token
	Questions       []QuestionNode
	OptimizationLog []OptimizationEntry
	Report          *Report
}

// Run executes the full pipeline over one text snapshot: normalize, format
// as markup, tokenize, build the question list, optimize (pass-through) and
// analyze. The only possible error is ErrEmptyInput from normalization;
// every later stage is total.
func Run(input Input, opts Options) (*Result, error) {
	clean, err := Normalize(input.RawText)
	if err != nil {
		return nil, err
	}

	header, markup := BuildMarkup(clean, input.SyllabusRef)
	tokens := Tokenize(markup)
	nodes := BuildAST(tokens)
	nodes, optLog := Optimize(nodes)
	report := Analyze(nodes, header, clean, input.SyllabusText, opts.Thresholds)

	return &Result{
		CleanText:       clean,
		Header:          header,
		Markup:          markup,
		Tokens:          tokens,
		Questions:       nodes,
		OptimizationLog: optLog,
		Report:          report,
	}, nil
}
