package match

import "github.com/poiesic/verity/core"

// MatchMonitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps and results during a match.
type MatchMonitor interface {
	Start(question string)
	AfterAnalysis(intent core.Intent, keywords KeywordProfile)
	AfterEmbedding(vector []float32)
	EmbeddingDegraded(err error)
	AfterCandidates(candidates []*core.VerifiedAnswer)
	Finish(results []*RankedAnswer)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                 {}
func (n *noopMonitor) AfterAnalysis(_ core.Intent, _ KeywordProfile)  {}
func (n *noopMonitor) AfterEmbedding(_ []float32)                     {}
func (n *noopMonitor) EmbeddingDegraded(_ error)                      {}
func (n *noopMonitor) AfterCandidates(_ []*core.VerifiedAnswer)       {}
func (n *noopMonitor) Finish(_ []*RankedAnswer)                       {}
