package pipeline

import (
	"github.com/quaesit/quaesit/classify"
	"github.com/quaesit/quaesit/core"
	"github.com/quaesit/quaesit/keywords"
)

// Monitor provides hooks to observe the answer process.
// Implement this interface to track intermediate steps while a query moves
// through the pipeline.
type Monitor interface {
	Start(query string)
	CacheHit(query string, results []core.Result)
	AfterClassification(label core.QueryLabel, source classify.Source)
	AfterKeywordExtraction(kws []keywords.Keyword)
	AfterRetrieval(candidates []core.CandidateRecord)
	AfterPruning(candidates []core.CandidateRecord)
	AfterValidation(outcomes []core.ValidationOutcome)
	Finish(results []core.Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                       {}
func (n *noopMonitor) CacheHit(_ string, _ []core.Result)                   {}
func (n *noopMonitor) AfterClassification(_ core.QueryLabel, _ classify.Source) {}
func (n *noopMonitor) AfterKeywordExtraction(_ []keywords.Keyword)          {}
func (n *noopMonitor) AfterRetrieval(_ []core.CandidateRecord)              {}
func (n *noopMonitor) AfterPruning(_ []core.CandidateRecord)                {}
func (n *noopMonitor) AfterValidation(_ []core.ValidationOutcome)           {}
func (n *noopMonitor) Finish(_ []core.Result)                               {}
