package knowledge

import "github.com/MikeSquared-Agency/casebase/internal/extractor"

const (
	openingSampleSize      = 5
	quantitativeSampleSize = 2
	clarifyingSampleSize   = 5
	brainstormSampleSize   = 3
)

// Picker chooses an index in [0, n). *math/rand/v2.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

// RelevantPatterns is the slice of a knowledge base handed to case generation.
type RelevantPatterns struct {
	OpeningExamples      []extractor.OpeningPattern `json:"opening_examples"`
	Frameworks           *FrameworkApproach         `json:"frameworks,omitempty"`
	QuantitativeExamples []QuantitativeSample       `json:"quantitative_examples"`
	IndustryContext      *NamedIndustryContext      `json:"industry_context,omitempty"`
	ClarifyingPatterns   []string                   `json:"clarifying_patterns"`
	BrainstormingPrompts []string                   `json:"brainstorming_prompts"`
}

type QuantitativeSample struct {
	Type     string   `json:"type"`
	Examples []string `json:"examples"`
}

type NamedIndustryContext struct {
	Name string `json:"name"`
	IndustryContext
}

// SelectRelevant picks the patterns for a case type and optional industry.
// Any group may be missing from kb. When industry is empty or unknown, a
// random industry is chosen with pick.
func SelectRelevant(kb *KnowledgeBase, caseType, industry string, pick Picker) RelevantPatterns {
	rp := RelevantPatterns{
		OpeningExamples:      []extractor.OpeningPattern{},
		QuantitativeExamples: []QuantitativeSample{},
		ClarifyingPatterns:   []string{},
		BrainstormingPrompts: []string{},
	}

	if openings := kb.OpeningPatterns[caseType]; len(openings) > 0 {
		rp.OpeningExamples = head(openings, openingSampleSize)
	}

	if fw, ok := kb.FrameworkApproaches[caseType]; ok {
		rp.Frameworks = &fw
	}

	for _, kind := range sortedKeys(kb.QuantitativePatterns) {
		examples := kb.QuantitativePatterns[kind].Examples
		if len(examples) == 0 {
			continue
		}
		rp.QuantitativeExamples = append(rp.QuantitativeExamples, QuantitativeSample{
			Type:     kind,
			Examples: head(examples, quantitativeSampleSize),
		})
	}

	if ic, ok := kb.IndustryContexts[industry]; ok && industry != "" {
		rp.IndustryContext = &NamedIndustryContext{Name: industry, IndustryContext: ic}
	} else if names := sortedKeys(kb.IndustryContexts); len(names) > 0 && pick != nil {
		name := names[pick.IntN(len(names))]
		rp.IndustryContext = &NamedIndustryContext{Name: name, IndustryContext: kb.IndustryContexts[name]}
	}

	rp.ClarifyingPatterns = head(kb.ClarifyingQuestionsPatterns, clarifyingSampleSize)

	for _, category := range sortedKeys(kb.BrainstormingCategories) {
		rp.BrainstormingPrompts = append(rp.BrainstormingPrompts, kb.BrainstormingCategories[category]...)
		if len(rp.BrainstormingPrompts) >= brainstormSampleSize {
			break
		}
	}
	rp.BrainstormingPrompts = head(rp.BrainstormingPrompts, brainstormSampleSize)

	return rp
}

// head returns a copy of at most the first n items.
func head[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	return append([]T{}, items...)
}
