package knowledge

import (
	"github.com/MikeSquared-Agency/casebase/internal/dedup"
	"github.com/MikeSquared-Agency/casebase/internal/extractor"
)

// MaxQuantitativeExamples bounds each quantitative kind after de-duplication.
const MaxQuantitativeExamples = 10

// Consolidate de-duplicates the facets that are fed verbatim into generation
// prompts. Structures, clarifying patterns, industry prompts, brainstorming
// and conclusions are left exactly as accumulated.
func Consolidate(kb *KnowledgeBase) {
	for caseType, patterns := range kb.OpeningPatterns {
		kb.OpeningPatterns[caseType] = dedup.ByKey(patterns, func(p extractor.OpeningPattern) string {
			return p.Pattern
		})
	}

	for caseType, fw := range kb.FrameworkApproaches {
		fw.Primary = dedup.Strings(fw.Primary)
		fw.Advanced = dedup.Strings(fw.Advanced)
		kb.FrameworkApproaches[caseType] = fw
	}

	for kind, qp := range kb.QuantitativePatterns {
		qp.Examples = dedup.Cap(dedup.Strings(qp.Examples), MaxQuantitativeExamples)
		kb.QuantitativePatterns[kind] = qp
	}
}
