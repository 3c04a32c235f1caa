package knowledge

import (
	"log/slog"
	"sort"
	"time"
)

type Summary struct {
	TotalCasesAnalyzed int             `json:"total_cases_analyzed"`
	LastUpdated        time.Time       `json:"last_updated"`
	CaseTypes          []CaseTypeCount `json:"case_types"`
	Industries         []IndustryCount `json:"industries"`
	FrameworkTypes     int             `json:"framework_types"`
	QuantitativeKinds  int             `json:"quantitative_patterns"`
}

type CaseTypeCount struct {
	Type         string `json:"type"`
	PatternCount int    `json:"pattern_count"`
}

type IndustryCount struct {
	Industry  string `json:"industry"`
	CaseCount int    `json:"case_count"`
}

// Summarize reports coverage statistics. Groups are sorted by name.
func Summarize(kb *KnowledgeBase) Summary {
	s := Summary{
		TotalCasesAnalyzed: kb.TotalCasesAnalyzed,
		LastUpdated:        kb.LastUpdated,
		CaseTypes:          []CaseTypeCount{},
		Industries:         []IndustryCount{},
		FrameworkTypes:     len(kb.FrameworkApproaches),
		QuantitativeKinds:  len(kb.QuantitativePatterns),
	}
	for _, caseType := range sortedKeys(kb.OpeningPatterns) {
		s.CaseTypes = append(s.CaseTypes, CaseTypeCount{Type: caseType, PatternCount: len(kb.OpeningPatterns[caseType])})
	}
	for _, industry := range sortedKeys(kb.IndustryContexts) {
		s.Industries = append(s.Industries, IndustryCount{Industry: industry, CaseCount: kb.IndustryContexts[industry].CaseCount})
	}
	return s
}

// LogSummary writes the build report operators see after a build.
func LogSummary(logger *slog.Logger, s Summary) {
	logger.Info("knowledge base summary",
		"total_cases_analyzed", s.TotalCasesAnalyzed,
		"case_types", len(s.CaseTypes),
		"industries", len(s.Industries),
		"quantitative_patterns", s.QuantitativeKinds,
		"framework_types", s.FrameworkTypes,
	)
	for _, ct := range s.CaseTypes {
		logger.Info("case type coverage", "type", ct.Type, "patterns", ct.PatternCount)
	}
	for _, ind := range s.Industries {
		logger.Info("industry coverage", "industry", ind.Industry, "cases", ind.CaseCount)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
