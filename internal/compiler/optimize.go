package compiler

// OptimizationEntry records one change made by the optimization pass.
type OptimizationEntry struct {
	Change  string `json:"change"`
	Message string `json:"message"`
}

// Optimize is a uniform pass-through stage: it returns the node list
// unchanged and an empty change-log. It exists to keep the stage interface
// stable for future rewrites (question reordering, marks rebalancing).
func Optimize(nodes []QuestionNode) ([]QuestionNode, []OptimizationEntry) {
	return nodes, []OptimizationEntry{}
}
