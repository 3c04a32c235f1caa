package knowledge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/casebase/internal/corpus"
	"github.com/MikeSquared-Agency/casebase/internal/extractor"
)

func buildInfo() BuildInfo {
	return BuildInfo{
		BuildID: uuid.New(),
		BuiltAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Sources: []string{"casebook.pdf"},
	}
}

func sampleCorpus() []corpus.CaseRecord {
	return []corpus.CaseRecord{
		{
			Prompt:         "Acme Corp grew 20% in 2023",
			CaseType:       "profitability",
			Industry:       "Retail",
			ClarifyingInfo: "Objective: restore margins\nTimeline: 6 months",
			Framework:      []string{"MECE", "Value Chain"},
			Questions: []corpus.Question{
				{Text: "What is the break-even point if margin improves 5%?"},
				{Text: "Estimate annual revenue."},
			},
			RawText:    "What risks and factors should we weigh?",
			Conclusion: "We recommend closing 3 stores.",
		},
		{
			Prompt:    "Beta Inc grew 45% in 2024",
			CaseType:  "profitability",
			Industry:  "Retail",
			Framework: []string{"MECE", "Porter's Five Forces"},
			Questions: []corpus.Question{{Text: "Estimate annual revenue."}},
		},
		{
			Prompt:   "Should Gamma Group enter the EV charging market?",
			CaseType: "market_entry",
			Questions: []corpus.Question{
				{Text: "What is the market size for chargers?"},
			},
		},
	}
}

func TestBuild_EmptyCorpus(t *testing.T) {
	kb := Build(nil, buildInfo())
	if kb.TotalCasesAnalyzed != 0 {
		t.Errorf("expected 0 cases, got %d", kb.TotalCasesAnalyzed)
	}
	if len(kb.OpeningPatterns) != 0 || len(kb.FrameworkApproaches) != 0 || len(kb.QuantitativePatterns) != 0 ||
		len(kb.IndustryContexts) != 0 || len(kb.BrainstormingCategories) != 0 {
		t.Errorf("expected all maps empty, got %+v", kb)
	}
	if kb.OpeningPatterns == nil || kb.ClarifyingQuestionsPatterns == nil {
		t.Error("expected empty but non-nil collections")
	}
}

func TestBuild_TotalMatchesCorpus(t *testing.T) {
	cases := sampleCorpus()
	kb := Build(cases, buildInfo())
	if kb.TotalCasesAnalyzed != len(cases) {
		t.Errorf("expected %d cases analyzed, got %d", len(cases), kb.TotalCasesAnalyzed)
	}
	if len(kb.CaseStructures) != len(cases) {
		t.Errorf("expected one structure per case, got %d", len(kb.CaseStructures))
	}
}

func TestBuild_OpeningPatternsCollapse(t *testing.T) {
	kb := Build(sampleCorpus(), buildInfo())

	openings := kb.OpeningPatterns["profitability"]
	if len(openings) != 1 {
		t.Fatalf("expected 1 collapsed opening pattern, got %d: %+v", len(openings), openings)
	}
	if openings[0].Pattern != "{company} grew {percentage} in {number}" {
		t.Errorf("unexpected pattern %q", openings[0].Pattern)
	}
	if openings[0].Original != "Acme Corp grew 20% in 2023" {
		t.Errorf("expected first occurrence kept, got %q", openings[0].Original)
	}
	if len(kb.OpeningPatterns["market_entry"]) != 1 {
		t.Errorf("expected market_entry opening, got %+v", kb.OpeningPatterns)
	}
}

func TestBuild_Quantitative(t *testing.T) {
	kb := Build(sampleCorpus(), buildInfo())

	profit, ok := kb.QuantitativePatterns[extractor.KindProfitabilityAnalysis]
	if !ok || len(profit.Examples) != 1 {
		t.Fatalf("expected one profitability example, got %+v", kb.QuantitativePatterns)
	}
	revenue := kb.QuantitativePatterns[extractor.KindRevenueCalculation]
	if diff := cmp.Diff([]string{"Estimate annual revenue."}, revenue.Examples); diff != "" {
		t.Errorf("revenue examples not de-duplicated (-want +got):\n%s", diff)
	}
	for _, ex := range revenue.Examples {
		if ex == "What is the break-even point if margin improves 5%?" {
			t.Error("break-even question must not be filed as revenue")
		}
	}
	if len(kb.QuantitativePatterns[extractor.KindMarketSizing].Examples) != 1 {
		t.Errorf("expected one market sizing example")
	}
}

func TestBuild_QuantitativeCappedAtTen(t *testing.T) {
	var cases []corpus.CaseRecord
	for i := 0; i < 15; i++ {
		cases = append(cases, corpus.CaseRecord{
			Questions: []corpus.Question{{Text: fmt.Sprintf("Compute revenue for region %d", i)}},
		})
	}
	kb := Build(cases, buildInfo())

	examples := kb.QuantitativePatterns[extractor.KindRevenueCalculation].Examples
	if len(examples) != MaxQuantitativeExamples {
		t.Fatalf("expected %d examples, got %d", MaxQuantitativeExamples, len(examples))
	}
	if examples[0] != "Compute revenue for region 0" || examples[9] != "Compute revenue for region 9" {
		t.Errorf("expected first ten in insertion order, got %v", examples)
	}
}

func TestBuild_Frameworks(t *testing.T) {
	kb := Build(sampleCorpus(), buildInfo())

	fw, ok := kb.FrameworkApproaches["profitability"]
	if !ok {
		t.Fatal("expected profitability framework approaches")
	}
	if diff := cmp.Diff([]string{"MECE"}, fw.Primary); diff != "" {
		t.Errorf("primary mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Porter's Five Forces", "Value Chain"}, fw.Advanced, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("advanced mismatch (-want +got):\n%s", diff)
	}
	if _, ok := kb.FrameworkApproaches["market_entry"]; ok {
		t.Error("market_entry has no frameworks and must not get a key")
	}
}

func TestBuild_IndustryDefaultsToGeneral(t *testing.T) {
	kb := Build(sampleCorpus(), buildInfo())

	general, ok := kb.IndustryContexts[extractor.DefaultIndustry]
	if !ok || general.CaseCount != 1 {
		t.Fatalf("expected one General case, got %+v", kb.IndustryContexts)
	}
	retail := kb.IndustryContexts["Retail"]
	if retail.CaseCount != 2 || len(retail.ExamplePrompts) != 2 {
		t.Errorf("expected 2 retail cases with prompts, got %+v", retail)
	}
}

func TestBuild_BrainstormingAndClarifying(t *testing.T) {
	kb := Build(sampleCorpus(), buildInfo())

	if got := kb.BrainstormingCategories[extractor.CategoryRisks]; len(got) != 1 {
		t.Errorf("expected risk prompt, got %+v", kb.BrainstormingCategories)
	}
	if _, ok := kb.BrainstormingCategories[extractor.CategoryFactors]; ok {
		t.Error("risk-and-factor prompt must not be filed under factors")
	}
	want := []string{"Objective: restore margins", "Timeline: 6 months"}
	if diff := cmp.Diff(want, kb.ClarifyingQuestionsPatterns); diff != "" {
		t.Errorf("clarifying mismatch (-want +got):\n%s", diff)
	}
	if len(kb.ConclusionFormats) != 1 || !kb.ConclusionFormats[0].Structure.HasRecommendation {
		t.Errorf("unexpected conclusions %+v", kb.ConclusionFormats)
	}
}

func TestBuild_DiagnosticFacetsKeepDuplicates(t *testing.T) {
	rec := corpus.CaseRecord{
		Prompt:         "Same prompt",
		ClarifyingInfo: "Client: same",
		Conclusion:     "Same conclusion",
		RawText:        "Any risks?",
	}
	kb := Build([]corpus.CaseRecord{rec, rec}, buildInfo())

	if len(kb.ClarifyingQuestionsPatterns) != 2 {
		t.Errorf("expected clarifying duplicates kept, got %d", len(kb.ClarifyingQuestionsPatterns))
	}
	if len(kb.ConclusionFormats) != 2 {
		t.Errorf("expected conclusion duplicates kept, got %d", len(kb.ConclusionFormats))
	}
	if len(kb.BrainstormingCategories[extractor.CategoryRisks]) != 2 {
		t.Errorf("expected brainstorm duplicates kept")
	}
	if len(kb.IndustryContexts[extractor.DefaultIndustry].ExamplePrompts) != 2 {
		t.Errorf("expected industry prompt duplicates kept")
	}
	if len(kb.OpeningPatterns[extractor.DefaultCaseType]) != 1 {
		t.Errorf("expected opening duplicates collapsed")
	}
}

func TestBuild_Idempotent(t *testing.T) {
	first := Build(sampleCorpus(), buildInfo())
	second := Build(sampleCorpus(), BuildInfo{BuildID: uuid.New(), BuiltAt: time.Now(), Sources: []string{"casebook.pdf"}})

	opts := cmpopts.IgnoreFields(KnowledgeBase{}, "BuildID", "LastUpdated")
	if diff := cmp.Diff(first, second, opts); diff != "" {
		t.Errorf("rebuild differs (-first +second):\n%s", diff)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "knowledge_base.json")
	kb := Build(sampleCorpus(), buildInfo())

	if err := Save(path, kb); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(kb, loaded); diff != "" {
		t.Errorf("loaded knowledge base differs (-saved +loaded):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the knowledge base file, found %d entries", len(entries))
	}
}

func TestLoad_NotBuilt(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "knowledge_base.json"))
	if !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Build(sampleCorpus(), buildInfo()))

	want := []CaseTypeCount{{Type: "market_entry", PatternCount: 1}, {Type: "profitability", PatternCount: 1}}
	if diff := cmp.Diff(want, s.CaseTypes); diff != "" {
		t.Errorf("case types mismatch (-want +got):\n%s", diff)
	}
	if s.TotalCasesAnalyzed != 3 || s.QuantitativeKinds != 3 || s.FrameworkTypes != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
}
