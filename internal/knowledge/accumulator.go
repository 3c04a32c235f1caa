package knowledge

import (
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/casebase/internal/corpus"
	"github.com/MikeSquared-Agency/casebase/internal/extractor"
)

// BuildInfo is the metadata stamped on a finished knowledge base.
type BuildInfo struct {
	BuildID uuid.UUID
	BuiltAt time.Time
	Sources []string
}

// Accumulator folds per-case contributions into a knowledge base. It always
// starts from empty state; there is no incremental path.
type Accumulator struct {
	kb *KnowledgeBase
}

func NewAccumulator() *Accumulator {
	return &Accumulator{kb: empty()}
}

// Add folds one contribution. Map keys are only created when a facet
// actually contributes.
func (a *Accumulator) Add(c extractor.Contribution) {
	kb := a.kb
	kb.TotalCasesAnalyzed++
	kb.CaseStructures = append(kb.CaseStructures, c.Structure)

	if c.Opening != nil {
		kb.OpeningPatterns[c.CaseType] = append(kb.OpeningPatterns[c.CaseType], *c.Opening)
	}

	if c.Frameworks != nil {
		fw := kb.FrameworkApproaches[c.CaseType]
		fw.Primary = append(fw.Primary, c.Frameworks.Primary...)
		fw.Advanced = append(fw.Advanced, c.Frameworks.Advanced...)
		if fw.Primary == nil {
			fw.Primary = []string{}
		}
		if fw.Advanced == nil {
			fw.Advanced = []string{}
		}
		kb.FrameworkApproaches[c.CaseType] = fw
	}

	for _, q := range c.Quantitative {
		qp := kb.QuantitativePatterns[q.Kind]
		qp.Examples = append(qp.Examples, q.Text)
		kb.QuantitativePatterns[q.Kind] = qp
	}

	ic := kb.IndustryContexts[c.Industry]
	ic.CaseCount++
	if ic.ExamplePrompts == nil {
		ic.ExamplePrompts = []string{}
	}
	if c.IndustryPrompt != "" {
		ic.ExamplePrompts = append(ic.ExamplePrompts, c.IndustryPrompt)
	}
	kb.IndustryContexts[c.Industry] = ic

	kb.ClarifyingQuestionsPatterns = append(kb.ClarifyingQuestionsPatterns, c.Clarifying...)

	for _, b := range c.Brainstorming {
		kb.BrainstormingCategories[b.Category] = append(kb.BrainstormingCategories[b.Category], b.Text)
	}

	if c.Conclusion != nil {
		kb.ConclusionFormats = append(kb.ConclusionFormats, *c.Conclusion)
	}
}

// Finish stamps build metadata, consolidates and hands over the knowledge
// base. The accumulator must not be used afterwards.
func (a *Accumulator) Finish(info BuildInfo) *KnowledgeBase {
	kb := a.kb
	a.kb = nil

	kb.BuildID = info.BuildID
	kb.LastUpdated = info.BuiltAt.UTC()
	if info.Sources != nil {
		kb.Sources = append([]string{}, info.Sources...)
	}
	Consolidate(kb)
	return kb
}

// Build is the whole fold over a corpus snapshot.
func Build(cases []corpus.CaseRecord, info BuildInfo) *KnowledgeBase {
	acc := NewAccumulator()
	for _, rec := range cases {
		acc.Add(extractor.Extract(rec))
	}
	return acc.Finish(info)
}
