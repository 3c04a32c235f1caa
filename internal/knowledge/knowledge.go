// Package knowledge holds the consolidated knowledge base built from a case
// corpus, the fold that builds it and the read-side helpers used by
// downstream prompt construction.
package knowledge

import (
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/casebase/internal/extractor"
)

const Version = "1.0"

// KnowledgeBase is write-once per build and read-only afterwards.
type KnowledgeBase struct {
	Version            string    `json:"version"`
	BuildID            uuid.UUID `json:"build_id"`
	LastUpdated        time.Time `json:"last_updated"`
	TotalCasesAnalyzed int       `json:"total_cases_analyzed"`
	Sources            []string  `json:"sources"`

	CaseStructures              []extractor.StructureFlags            `json:"case_structures"`
	OpeningPatterns             map[string][]extractor.OpeningPattern `json:"opening_patterns"`
	FrameworkApproaches         map[string]FrameworkApproach          `json:"framework_approaches"`
	QuantitativePatterns        map[string]QuantitativePattern        `json:"quantitative_patterns"`
	IndustryContexts            map[string]IndustryContext            `json:"industry_contexts"`
	ClarifyingQuestionsPatterns []string                              `json:"clarifying_questions_patterns"`
	BrainstormingCategories     map[string][]string                   `json:"brainstorming_categories"`
	ConclusionFormats           []extractor.ConclusionFormat          `json:"conclusion_formats"`
}

// FrameworkApproach lists the distinct framework labels seen for a case type.
type FrameworkApproach struct {
	Primary  []string `json:"primary"`
	Advanced []string `json:"advanced"`
}

type QuantitativePattern struct {
	Examples []string `json:"examples"`
}

type IndustryContext struct {
	CaseCount      int      `json:"case_count"`
	ExamplePrompts []string `json:"example_prompts"`
}

func empty() *KnowledgeBase {
	return &KnowledgeBase{
		Version:                     Version,
		Sources:                     []string{},
		CaseStructures:              []extractor.StructureFlags{},
		OpeningPatterns:             map[string][]extractor.OpeningPattern{},
		FrameworkApproaches:         map[string]FrameworkApproach{},
		QuantitativePatterns:        map[string]QuantitativePattern{},
		IndustryContexts:            map[string]IndustryContext{},
		ClarifyingQuestionsPatterns: []string{},
		BrainstormingCategories:     map[string][]string{},
		ConclusionFormats:           []extractor.ConclusionFormat{},
	}
}
