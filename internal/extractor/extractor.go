// Package extractor derives reusable structural patterns from parsed case
// records. Every facet is a pure function of a single record and treats an
// absent field as nothing to contribute.
package extractor

import (
	"regexp"

	"github.com/MikeSquared-Agency/casebase/internal/corpus"
)

const (
	openingExcerptLen    = 200
	quantitativeExcerpt  = 150
	industryExcerptLen   = 200
	conclusionExcerptLen = 300
)

var (
	primaryFrameworkRe = regexp.MustCompile(`(?i)MECE|Revenue|Cost|3Cs|4Ps`)

	quantitativeClassifiers = []struct {
		kind string
		re   *regexp.Regexp
	}{
		{KindRevenueCalculation, regexp.MustCompile(`(?i)revenue|price.*volume|sales`)},
		{KindMarketSizing, regexp.MustCompile(`(?i)market size|TAM|SAM`)},
		{KindProfitabilityAnalysis, regexp.MustCompile(`(?i)break.*even|profit.*margin`)},
	}

	clarifyingRe = regexp.MustCompile(`(?i)(?:Objective|Timeline|Client|Market|Competition):\s*[^\n]+`)

	brainstormRe    = regexp.MustCompile(`(?i)(?:risks?|factors?|considerations?|approach(?:es)?).*?\?`)
	brainstormRules = []struct {
		category string
		re       *regexp.Regexp
	}{
		{CategoryRisks, regexp.MustCompile(`(?i)risk`)},
		{CategoryFactors, regexp.MustCompile(`(?i)factor`)},
		{CategoryConsiderations, regexp.MustCompile(`(?i)consider`)},
		{CategoryApproaches, regexp.MustCompile(`(?i)approach`)},
	}

	recommendRe      = regexp.MustCompile(`(?i)recommend`)
	riskRe           = regexp.MustCompile(`(?i)risk`)
	nextStepRe       = regexp.MustCompile(`(?i)next step`)
	quantificationRe = regexp.MustCompile(`\d[%$€£¥]|[$€£¥]\d`)
)

// Extract runs every facet over rec.
func Extract(rec corpus.CaseRecord) Contribution {
	caseType := rec.CaseType
	if caseType == "" {
		caseType = DefaultCaseType
	}
	industry := rec.Industry
	if industry == "" {
		industry = DefaultIndustry
	}

	return Contribution{
		CaseType:       caseType,
		Industry:       industry,
		Structure:      Structure(rec),
		Opening:        Opening(rec),
		Frameworks:     Frameworks(rec),
		Quantitative:   Quantitative(rec),
		IndustryPrompt: IndustryPrompt(rec),
		Clarifying:     Clarifying(rec),
		Brainstorming:  Brainstorming(rec),
		Conclusion:     Conclusion(rec),
	}
}

func Structure(rec corpus.CaseRecord) StructureFlags {
	return StructureFlags{
		HasPrompt:     rec.Prompt != "",
		HasClarifying: rec.ClarifyingInfo != "",
		HasFramework:  len(rec.Framework) > 0,
		HasQuestions:  len(rec.Questions) > 0,
		QuestionCount: len(rec.Questions),
		HasExhibits:   len(rec.Exhibits) > 0,
		HasConclusion: rec.Conclusion != "",
	}
}

// Opening returns nil when the record has no prompt.
func Opening(rec corpus.CaseRecord) *OpeningPattern {
	if rec.Prompt == "" {
		return nil
	}
	return &OpeningPattern{
		Original: truncate(rec.Prompt, openingExcerptLen),
		Pattern:  truncate(NormalizeOpening(rec.Prompt), openingExcerptLen),
	}
}

// Frameworks returns nil when the record lists no frameworks.
func Frameworks(rec corpus.CaseRecord) *FrameworkSplit {
	if len(rec.Framework) == 0 {
		return nil
	}
	split := &FrameworkSplit{}
	for _, fw := range rec.Framework {
		if IsPrimaryFramework(fw) {
			split.Primary = append(split.Primary, fw)
		} else {
			split.Advanced = append(split.Advanced, fw)
		}
	}
	return split
}

func IsPrimaryFramework(label string) bool {
	return primaryFrameworkRe.MatchString(label)
}

// Quantitative classifies each question independently; one question may
// land in several kinds.
func Quantitative(rec corpus.CaseRecord) []QuantitativeExample {
	var out []QuantitativeExample
	for _, q := range rec.Questions {
		for _, c := range quantitativeClassifiers {
			if c.re.MatchString(q.Text) {
				out = append(out, QuantitativeExample{
					Kind: c.kind,
					Text: truncate(q.Text, quantitativeExcerpt),
				})
			}
		}
	}
	return out
}

// IndustryPrompt is the prompt sample recorded for the record's industry,
// or "" when there is no prompt.
func IndustryPrompt(rec corpus.CaseRecord) string {
	return truncate(rec.Prompt, industryExcerptLen)
}

func Clarifying(rec corpus.CaseRecord) []string {
	if rec.ClarifyingInfo == "" {
		return nil
	}
	return clarifyingRe.FindAllString(rec.ClarifyingInfo, -1)
}

// Brainstorming scans the raw text only.
func Brainstorming(rec corpus.CaseRecord) []BrainstormPrompt {
	if rec.RawText == "" {
		return nil
	}
	matches := brainstormRe.FindAllString(rec.RawText, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]BrainstormPrompt, 0, len(matches))
	for _, m := range matches {
		out = append(out, BrainstormPrompt{Category: CategorizeBrainstorm(m), Text: m})
	}
	return out
}

// CategorizeBrainstorm files text under the first matching category:
// risks, factors, considerations, approaches, then other.
func CategorizeBrainstorm(text string) string {
	for _, rule := range brainstormRules {
		if rule.re.MatchString(text) {
			return rule.category
		}
	}
	return CategoryOther
}

func Conclusion(rec corpus.CaseRecord) *ConclusionFormat {
	if rec.Conclusion == "" {
		return nil
	}
	return &ConclusionFormat{
		Structure: AnalyzeConclusion(rec.Conclusion),
		Example:   truncate(rec.Conclusion, conclusionExcerptLen),
	}
}

func AnalyzeConclusion(text string) ConclusionFlags {
	return ConclusionFlags{
		HasRecommendation: recommendRe.MatchString(text),
		HasRisks:          riskRe.MatchString(text),
		HasNextSteps:      nextStepRe.MatchString(text),
		HasQuantification: quantificationRe.MatchString(text),
	}
}
