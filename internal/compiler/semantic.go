package compiler

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Status of one semantic check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
	StatusSkip Status = "SKIP"
)

// Difficulty classification keyword sets. Priority is HARD > MEDIUM > EASY;
// a question matching none defaults to MEDIUM.
var (
	easyKeywords   = []string{"define", "state", "list", "identify", "name", "mention", "label", "write"}
	mediumKeywords = []string{"explain", "prove", "derive", "compare", "discuss", "describe", "illustrate", "differentiate", "outline"}
	hardKeywords   = []string{"design", "construct", "develop", "implement", "optimize", "synthesize", "analyze", "evaluate", "create", "formulate"}
)

var vagueTerms = []string{"something", "anything", "etc", "and so on"}

// Thresholds are the tunable constants of the semantic checks. The zero
// value is not usable; start from DefaultThresholds.
type Thresholds struct {
	// Minutes of tolerated difference between estimated and declared time.
	TimeTolerance int `mapstructure:"time_tolerance"`
	// Multiplier applied to the summed per-question estimate.
	TimeBuffer float64 `mapstructure:"time_buffer"`

	// Difficulty distribution bands, as ratios of the question count.
	EasyMin   float64 `mapstructure:"easy_min"`
	EasyMax   float64 `mapstructure:"easy_max"`
	MediumMin float64 `mapstructure:"medium_min"`
	MediumMax float64 `mapstructure:"medium_max"`
	HardMin   float64 `mapstructure:"hard_min"`
	HardMax   float64 `mapstructure:"hard_max"`

	// Minimum ratio of syllabus topics found in the paper text.
	CoverageMin float64 `mapstructure:"coverage_min"`
	// Cap on topics extracted from the syllabus text.
	MaxTopics int `mapstructure:"max_topics"`

	// Minimum ratio of crisp questions and the verbose word limit.
	CrispMin         float64 `mapstructure:"crisp_min"`
	VerboseWordLimit int     `mapstructure:"verbose_word_limit"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		TimeTolerance:    15,
		TimeBuffer:       1.10,
		EasyMin:          0.2,
		EasyMax:          0.4,
		MediumMin:        0.4,
		MediumMax:        0.6,
		HardMin:          0.1,
		HardMax:          0.3,
		CoverageMin:      0.7,
		MaxTopics:        10,
		CrispMin:         0.7,
		VerboseWordLimit: 100,
	}
}

// CheckResult is the part shared by every check.
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

type MarksCheck struct {
	CheckResult
	CalculatedTotal int `json:"calculated_total"`
	DeclaredTotal   int `json:"declared_total"`
	Difference      int `json:"difference"`
}

type TimeCheck struct {
	CheckResult
	EstimatedTime int `json:"estimated_time"`
	DeclaredTime  int `json:"declared_time"`
	Difference    int `json:"difference"`
}

type DifficultyCheck struct {
	CheckResult
	EasyCount        int     `json:"easy_count"`
	MediumCount      int     `json:"medium_count"`
	HardCount        int     `json:"hard_count"`
	EasyPercentage   float64 `json:"easy_percentage"`
	MediumPercentage float64 `json:"medium_percentage"`
	HardPercentage   float64 `json:"hard_percentage"`
}

type CoverageCheck struct {
	CheckResult
	CoveredTopics      []string `json:"covered_topics,omitempty"`
	UncoveredTopics    []string `json:"uncovered_topics,omitempty"`
	CoveragePercentage float64  `json:"coverage_percentage"`
}

type CrispnessCheck struct {
	CheckResult
	CrispCount          int     `json:"crisp_count"`
	VerboseCount        int     `json:"verbose_count"`
	AmbiguousCount      int     `json:"ambiguous_count"`
	CrispnessPercentage float64 `json:"crispness_percentage"`
}

type Checks struct {
	MarksValidation        MarksCheck      `json:"marks_validation"`
	TimeEstimation         TimeCheck       `json:"time_estimation"`
	DifficultyDistribution DifficultyCheck `json:"difficulty_distribution"`
	SyllabusCoverage       CoverageCheck   `json:"syllabus_coverage"`
	CrispnessAnalysis      CrispnessCheck  `json:"crispness_analysis"`
}

// Statistics are the aggregate figures recorded alongside the checks.
type Statistics struct {
	TotalQuestions       int `json:"total_questions"`
	TotalMarksCalculated int `json:"total_marks_calculated"`
	TotalMarksDeclared   int `json:"total_marks_declared"`
	EstimatedTimeMinutes int `json:"estimated_time_minutes"`
	DeclaredTimeMinutes  int `json:"declared_time_minutes"`
	DifficultyEasyCount  int `json:"difficulty_easy_count"`
	DifficultyMedCount   int `json:"difficulty_medium_count"`
	DifficultyHardCount  int `json:"difficulty_hard_count"`
}

// Report is the analysis contract consumed by downstream collaborators. It
// is produced by exactly one Analyze pass; collaborators extend it through
// Merge, never by re-deriving checks.
type Report struct {
	Checks         Checks     `json:"checks"`
	Statistics     Statistics `json:"statistics"`
	Warnings       []string   `json:"warnings"`
	Suggestions    []string   `json:"suggestions"`
	CrispnessScore int        `json:"crispness_score"`
}

// Merge appends another party's warnings and suggestions. Checks,
// statistics and score are owned by the analysis pass and never overwritten.
func (r *Report) Merge(warnings, suggestions []string) {
	r.Warnings = append(r.Warnings, warnings...)
	r.Suggestions = append(r.Suggestions, suggestions...)
}

// Analyze runs the five semantic checks over the question nodes and
// aggregates the report. Nodes are annotated in place with difficulty,
// crispness, estimated time and syllabus topic. It never fails: degenerate
// input yields SKIP or zero-percentage results.
func Analyze(nodes []QuestionNode, header Header, sourceText, syllabusText string, th Thresholds) *Report {
	report := &Report{
		Warnings:    []string{},
		Suggestions: []string{},
	}

	// Difficulty first: the time estimate depends on it.
	report.Checks.DifficultyDistribution = classifyDifficulty(nodes, th)
	report.Checks.MarksValidation = validateMarks(nodes, header.TotalMarks)
	report.Checks.TimeEstimation = estimateTime(nodes, header.TotalTime, th)
	report.Checks.SyllabusCoverage = checkSyllabusCoverage(nodes, syllabusText, sourceText, th)
	report.Checks.CrispnessAnalysis = analyzeCrispness(nodes, th)

	report.Statistics = Statistics{
		TotalQuestions:       len(nodes),
		TotalMarksCalculated: report.Checks.MarksValidation.CalculatedTotal,
		TotalMarksDeclared:   header.TotalMarks,
		EstimatedTimeMinutes: report.Checks.TimeEstimation.EstimatedTime,
		DeclaredTimeMinutes:  header.TotalTime,
		DifficultyEasyCount:  report.Checks.DifficultyDistribution.EasyCount,
		DifficultyMedCount:   report.Checks.DifficultyDistribution.MediumCount,
		DifficultyHardCount:  report.Checks.DifficultyDistribution.HardCount,
	}

	generateWarningsAndSuggestions(report, th)
	report.CrispnessScore = overallScore(report)

	return report
}

func validateMarks(nodes []QuestionNode, declaredTotal int) MarksCheck {
	calculated := 0
	for _, n := range nodes {
		calculated += n.Marks
	}

	valid := declaredTotal <= 0 || calculated == declaredTotal
	difference := calculated - declaredTotal
	if difference < 0 {
		difference = -difference
	}

	check := MarksCheck{
		CalculatedTotal: calculated,
		DeclaredTotal:   declaredTotal,
		Difference:      difference,
	}
	if valid {
		check.Status = StatusPass
		check.Message = "Marks sum matches declared total"
	} else {
		check.Status = StatusFail
		check.Message = fmt.Sprintf("Marks mismatch: %d marks difference", difference)
	}
	return check
}

// minutesPerMark is the per-difficulty time weight used by the estimator.
func minutesPerMark(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 2
	case DifficultyHard:
		return 4
	default:
		return 3
	}
}

func estimateTime(nodes []QuestionNode, declaredTime int, th Thresholds) TimeCheck {
	estimated := 0
	for i := range nodes {
		perNode := nodes[i].Marks * minutesPerMark(nodes[i].Difficulty)
		nodes[i].EstimatedTime = perNode
		estimated += perNode
	}
	estimated = int(float64(estimated) * th.TimeBuffer)

	difference := estimated - declaredTime
	if difference < 0 {
		difference = -difference
	}
	withinTolerance := declaredTime <= 0 || difference <= th.TimeTolerance

	check := TimeCheck{
		EstimatedTime: estimated,
		DeclaredTime:  declaredTime,
		Difference:    difference,
	}
	if withinTolerance {
		check.Status = StatusPass
	} else {
		check.Status = StatusWarn
	}
	check.Message = fmt.Sprintf("Estimated time: %d minutes vs declared: %d minutes", estimated, declaredTime)
	return check
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func classifyDifficulty(nodes []QuestionNode, th Thresholds) DifficultyCheck {
	var easy, medium, hard int
	for i := range nodes {
		lower := strings.ToLower(nodes[i].Text)
		switch {
		case containsAny(lower, hardKeywords):
			nodes[i].Difficulty = DifficultyHard
			hard++
		case containsAny(lower, mediumKeywords):
			nodes[i].Difficulty = DifficultyMedium
			medium++
		case containsAny(lower, easyKeywords):
			nodes[i].Difficulty = DifficultyEasy
			easy++
		default:
			nodes[i].Difficulty = DifficultyMedium
			medium++
		}
	}

	total := len(nodes)
	balanced := false
	if total > 0 {
		easyRatio := float64(easy) / float64(total)
		mediumRatio := float64(medium) / float64(total)
		hardRatio := float64(hard) / float64(total)
		balanced = easyRatio >= th.EasyMin && easyRatio <= th.EasyMax &&
			mediumRatio >= th.MediumMin && mediumRatio <= th.MediumMax &&
			hardRatio >= th.HardMin && hardRatio <= th.HardMax
	}

	check := DifficultyCheck{
		EasyCount:        easy,
		MediumCount:      medium,
		HardCount:        hard,
		EasyPercentage:   percentage(easy, total),
		MediumPercentage: percentage(medium, total),
		HardPercentage:   percentage(hard, total),
	}
	if balanced {
		check.Status = StatusPass
		check.Message = "Difficulty distribution is balanced"
	} else {
		check.Status = StatusWarn
		check.Message = "Difficulty distribution needs improvement"
	}
	return check
}

var reTopicSplit = regexp.MustCompile(`[,;:\n]`)

// ExtractTopics splits syllabus text on comma/semicolon/colon/newline and
// keeps trimmed tokens longer than 3 characters, capped at maxTopics.
func ExtractTopics(syllabus string, maxTopics int) []string {
	parts := reTopicSplit.Split(syllabus, -1)
	topics := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) > 3 {
			topics = append(topics, part)
		}
		if len(topics) == maxTopics {
			break
		}
	}
	return topics
}

func checkSyllabusCoverage(nodes []QuestionNode, syllabusText, sourceText string, th Thresholds) CoverageCheck {
	if strings.TrimSpace(syllabusText) == "" {
		return CoverageCheck{CheckResult: CheckResult{
			Status:  StatusSkip,
			Message: "No syllabus information available",
		}}
	}

	topics := ExtractTopics(syllabusText, th.MaxTopics)
	if len(topics) == 0 {
		return CoverageCheck{CheckResult: CheckResult{
			Status:  StatusSkip,
			Message: "Could not extract topics from syllabus",
		}}
	}

	textLower := strings.ToLower(sourceText)
	covered := []string{}
	uncovered := []string{}
	for _, topic := range topics {
		if strings.Contains(textLower, strings.ToLower(topic)) {
			covered = append(covered, topic)
		} else {
			uncovered = append(uncovered, topic)
		}
	}

	annotateTopics(nodes, covered)

	ratio := float64(len(covered)) / float64(len(topics))
	check := CoverageCheck{
		CoveredTopics:      covered,
		UncoveredTopics:    uncovered,
		CoveragePercentage: math.Round(ratio*1000) / 10,
	}
	if ratio >= th.CoverageMin {
		check.Status = StatusPass
	} else {
		check.Status = StatusWarn
	}
	check.Message = fmt.Sprintf("%d/%d topics covered", len(covered), len(topics))
	return check
}

// annotateTopics tags each node with the first covered topic its text
// mentions, when there is one.
func annotateTopics(nodes []QuestionNode, covered []string) {
	for i := range nodes {
		lower := strings.ToLower(nodes[i].Text)
		for _, topic := range covered {
			if strings.Contains(lower, strings.ToLower(topic)) {
				nodes[i].SyllabusTopic = topic
				break
			}
		}
	}
}

func analyzeCrispness(nodes []QuestionNode, th Thresholds) CrispnessCheck {
	var crisp, verbose, ambiguous int
	for i := range nodes {
		wordCount := len(strings.Fields(nodes[i].Text))
		lower := strings.ToLower(nodes[i].Text)
		switch {
		case wordCount > th.VerboseWordLimit:
			nodes[i].Crispness = CrispnessVerbose
			verbose++
		case containsAny(lower, vagueTerms):
			nodes[i].Crispness = CrispnessAmbiguous
			ambiguous++
		default:
			nodes[i].Crispness = CrispnessCrisp
			crisp++
		}
	}

	total := len(nodes)
	ratio := 0.0
	if total > 0 {
		ratio = float64(crisp) / float64(total)
	}

	check := CrispnessCheck{
		CrispCount:          crisp,
		VerboseCount:        verbose,
		AmbiguousCount:      ambiguous,
		CrispnessPercentage: math.Round(ratio*1000) / 10,
	}
	if ratio >= th.CrispMin {
		check.Status = StatusPass
	} else {
		check.Status = StatusWarn
	}
	check.Message = fmt.Sprintf("%d/%d questions are crisp and clear", crisp, total)
	return check
}

func generateWarningsAndSuggestions(report *Report, th Thresholds) {
	checks := &report.Checks

	if checks.MarksValidation.Status == StatusFail {
		report.Warnings = append(report.Warnings,
			"Marks sum mismatch: "+checks.MarksValidation.Message)
		report.Suggestions = append(report.Suggestions,
			"Review and correct the marks allocation to match the declared total")
	}

	if checks.TimeEstimation.Difference > th.TimeTolerance {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Time allocation mismatch: %d minutes difference", checks.TimeEstimation.Difference))
		if checks.TimeEstimation.EstimatedTime > checks.TimeEstimation.DeclaredTime {
			report.Suggestions = append(report.Suggestions,
				"Consider increasing allotted time or reducing question complexity")
		} else {
			report.Suggestions = append(report.Suggestions,
				"Consider adding more questions or increasing difficulty")
		}
	}

	if checks.DifficultyDistribution.Status == StatusWarn {
		easyPct := checks.DifficultyDistribution.EasyPercentage
		hardPct := checks.DifficultyDistribution.HardPercentage
		if easyPct < th.EasyMin*100 {
			report.Suggestions = append(report.Suggestions,
				"Add more easy-level questions (define, state, list)")
		}
		if easyPct > th.EasyMax*100 {
			report.Suggestions = append(report.Suggestions,
				"Reduce easy-level questions and add more challenging ones")
		}
		if hardPct < th.HardMin*100 {
			report.Suggestions = append(report.Suggestions,
				"Add more hard-level questions (design, construct, analyze)")
		}
		if hardPct > th.HardMax*100 {
			report.Suggestions = append(report.Suggestions,
				"Reduce hard-level questions for better balance")
		}
	}

	if checks.CrispnessAnalysis.VerboseCount > 0 {
		report.Suggestions = append(report.Suggestions,
			fmt.Sprintf("Simplify %d verbose question(s)", checks.CrispnessAnalysis.VerboseCount))
	}
	if checks.CrispnessAnalysis.AmbiguousCount > 0 {
		report.Suggestions = append(report.Suggestions,
			fmt.Sprintf("Clarify %d ambiguous question(s)", checks.CrispnessAnalysis.AmbiguousCount))
	}
}

// overallScore synthesizes the 0-100 quality number: 100 minus 20 for a
// marks failure, 10 for a time warning, 15 for an unbalanced distribution
// and 0.3 points per missing crispness percentage point, clamped to [0,100].
func overallScore(report *Report) int {
	score := 100
	if report.Checks.MarksValidation.Status == StatusFail {
		score -= 20
	}
	if report.Checks.TimeEstimation.Status == StatusWarn {
		score -= 10
	}
	if report.Checks.DifficultyDistribution.Status == StatusWarn {
		score -= 15
	}
	score -= int((100 - report.Checks.CrispnessAnalysis.CrispnessPercentage) * 0.3)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
