package extractor

import (
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/casebase/internal/corpus"
)

func TestNormalizeOpening(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{
			name:   "company percentage and year",
			prompt: "Acme Corp grew 20% in 2023",
			want:   "{company} grew {percentage} in {number}",
		},
		{
			name:   "sentence period survives",
			prompt: "We advise Acme Group.",
			want:   "We advise {company}.",
		},
		{
			name:   "suffix glued to name",
			prompt: "ShopMart wants to enter Brazil",
			want:   "{company} wants to enter Brazil",
		},
		{
			name:   "currency with magnitude",
			prompt: "Revenue fell from $120M to €95.5M",
			want:   "Revenue fell from {currency} to {currency}",
		},
		{
			name:   "grouped and decimal numbers",
			prompt: "They employ 12,500 people across 3.5 regions",
			want:   "They employ {number} people across {number} regions",
		},
		{
			name:   "decimal percentage",
			prompt: "Margins dropped 12.5% last year",
			want:   "Margins dropped {percentage} last year",
		},
		{
			name:   "no substitutions",
			prompt: "Should our client enter the market?",
			want:   "Should our client enter the market?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeOpening(tt.prompt); got != tt.want {
				t.Errorf("NormalizeOpening(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestStructure_SparseRecord(t *testing.T) {
	flags := Structure(corpus.CaseRecord{})
	if flags != (StructureFlags{}) {
		t.Errorf("expected all-false flags for empty record, got %+v", flags)
	}

	flags = Structure(corpus.CaseRecord{
		Prompt:    "p",
		Questions: []corpus.Question{{Text: "a"}, {Text: "b"}},
		Exhibits:  []corpus.Exhibit{{Number: 1}},
	})
	if !flags.HasPrompt || !flags.HasQuestions || !flags.HasExhibits {
		t.Errorf("expected prompt/questions/exhibits flags, got %+v", flags)
	}
	if flags.QuestionCount != 2 {
		t.Errorf("expected question count 2, got %d", flags.QuestionCount)
	}
	if flags.HasClarifying || flags.HasFramework || flags.HasConclusion {
		t.Errorf("unexpected flags set: %+v", flags)
	}
}

func TestOpening_TruncatesTo200Runes(t *testing.T) {
	long := strings.Repeat("é", 250)
	op := Opening(corpus.CaseRecord{Prompt: long})
	if op == nil {
		t.Fatal("expected opening pattern")
	}
	if n := len([]rune(op.Original)); n != 200 {
		t.Errorf("expected original truncated to 200 runes, got %d", n)
	}
	if n := len([]rune(op.Pattern)); n != 200 {
		t.Errorf("expected pattern truncated to 200 runes, got %d", n)
	}
	if Opening(corpus.CaseRecord{}) != nil {
		t.Error("expected nil opening for record without prompt")
	}
}

func TestFrameworks_PrimaryVsAdvanced(t *testing.T) {
	split := Frameworks(corpus.CaseRecord{
		Framework: []string{"MECE", "revenue tree", "Porter's Five Forces", "3Cs", "Value Chain", "cost structure"},
	})
	if split == nil {
		t.Fatal("expected framework split")
	}
	wantPrimary := []string{"MECE", "revenue tree", "3Cs", "cost structure"}
	if strings.Join(split.Primary, "|") != strings.Join(wantPrimary, "|") {
		t.Errorf("primary = %v, want %v", split.Primary, wantPrimary)
	}
	wantAdvanced := []string{"Porter's Five Forces", "Value Chain"}
	if strings.Join(split.Advanced, "|") != strings.Join(wantAdvanced, "|") {
		t.Errorf("advanced = %v, want %v", split.Advanced, wantAdvanced)
	}
	if Frameworks(corpus.CaseRecord{Framework: []string{}}) != nil {
		t.Error("expected nil split for empty framework list")
	}
}

func TestQuantitative_Classification(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		kinds []string
	}{
		{
			name:  "break-even only",
			text:  "What is the break-even point if margin improves 5%?",
			kinds: []string{KindProfitabilityAnalysis},
		},
		{
			name:  "revenue only",
			text:  "Estimate next year's revenue for the client.",
			kinds: []string{KindRevenueCalculation},
		},
		{
			name:  "market size",
			text:  "What is the market size for e-bikes in Germany?",
			kinds: []string{KindMarketSizing},
		},
		{
			name:  "revenue and profit margin",
			text:  "How do sales changes affect the profit margin?",
			kinds: []string{KindRevenueCalculation, KindProfitabilityAnalysis},
		},
		{
			name:  "nothing",
			text:  "Describe the org chart.",
			kinds: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantitative(corpus.CaseRecord{Questions: []corpus.Question{{Text: tt.text}}})
			if len(got) != len(tt.kinds) {
				t.Fatalf("expected %d matches, got %+v", len(tt.kinds), got)
			}
			for i, kind := range tt.kinds {
				if got[i].Kind != kind {
					t.Errorf("match %d kind = %q, want %q", i, got[i].Kind, kind)
				}
			}
		})
	}
}

func TestQuantitative_TruncatesTo150(t *testing.T) {
	text := "revenue " + strings.Repeat("x", 300)
	got := Quantitative(corpus.CaseRecord{Questions: []corpus.Question{{Text: text}}})
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if len(got[0].Text) != 150 {
		t.Errorf("expected 150 chars, got %d", len(got[0].Text))
	}
}

func TestClarifying(t *testing.T) {
	info := "Objective: grow profits by 10%\nclient: a regional grocer\nBudget: unknown\nCOMPETITION: two national chains"
	got := Clarifying(corpus.CaseRecord{ClarifyingInfo: info})
	want := []string{
		"Objective: grow profits by 10%",
		"client: a regional grocer",
		"COMPETITION: two national chains",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Clarifying = %q, want %q", got, want)
	}
	if Clarifying(corpus.CaseRecord{}) != nil {
		t.Error("expected nil for record without clarifying info")
	}
}

func TestBrainstorming_RiskBeatsFactor(t *testing.T) {
	got := Brainstorming(corpus.CaseRecord{RawText: "What risks and factors should we weigh?"})
	if len(got) != 1 {
		t.Fatalf("expected 1 brainstorm prompt, got %+v", got)
	}
	if got[0].Category != CategoryRisks {
		t.Errorf("expected category risks, got %q", got[0].Category)
	}
	if got[0].Text != "risks and factors should we weigh?" {
		t.Errorf("unexpected match text %q", got[0].Text)
	}
}

func TestBrainstorming_IgnoresPrompt(t *testing.T) {
	got := Brainstorming(corpus.CaseRecord{Prompt: "What risks exist?"})
	if got != nil {
		t.Errorf("expected nil without raw text, got %+v", got)
	}
}

func TestBrainstorming_MultipleMatches(t *testing.T) {
	text := "Intro. Which factors drive churn? Also, what approach would you take? Then: any considerations for timing?"
	got := Brainstorming(corpus.CaseRecord{RawText: text})
	want := []string{CategoryFactors, CategoryApproaches, CategoryConsiderations}
	if len(got) != len(want) {
		t.Fatalf("expected %d prompts, got %+v", len(want), got)
	}
	for i, cat := range want {
		if got[i].Category != cat {
			t.Errorf("prompt %d category = %q, want %q", i, got[i].Category, cat)
		}
	}
}

func TestBrainstorming_SingularApproach(t *testing.T) {
	got := Brainstorming(corpus.CaseRecord{RawText: "What approach would you take?"})
	if len(got) != 1 {
		t.Fatalf("expected 1 prompt, got %+v", got)
	}
	if got[0].Category != CategoryApproaches {
		t.Errorf("expected category approaches, got %q", got[0].Category)
	}
	if got[0].Text != "approach would you take?" {
		t.Errorf("unexpected match text %q", got[0].Text)
	}
}

func TestCategorizeBrainstorm(t *testing.T) {
	tests := map[string]string{
		"risk and approach?":      CategoryRisks,
		"Factors to consider?":    CategoryFactors,
		"considerations?":         CategoryConsiderations,
		"Approaches?":             CategoryApproaches,
		"what else should we do?": CategoryOther,
	}
	for text, want := range tests {
		if got := CategorizeBrainstorm(text); got != want {
			t.Errorf("CategorizeBrainstorm(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestConclusion(t *testing.T) {
	c := Conclusion(corpus.CaseRecord{
		Conclusion: "We recommend entering the market. Key risk is pricing. Next steps: pilot in Q3 for a 15% uplift.",
	})
	if c == nil {
		t.Fatal("expected conclusion format")
	}
	want := ConclusionFlags{HasRecommendation: true, HasRisks: true, HasNextSteps: true, HasQuantification: true}
	if c.Structure != want {
		t.Errorf("structure = %+v, want %+v", c.Structure, want)
	}

	c = Conclusion(corpus.CaseRecord{Conclusion: strings.Repeat("a", 400)})
	if c.Structure != (ConclusionFlags{}) {
		t.Errorf("expected no flags, got %+v", c.Structure)
	}
	if len(c.Example) != 300 {
		t.Errorf("expected example truncated to 300, got %d", len(c.Example))
	}
}

func TestExtract_Defaults(t *testing.T) {
	c := Extract(corpus.CaseRecord{})
	if c.CaseType != DefaultCaseType {
		t.Errorf("expected case type %q, got %q", DefaultCaseType, c.CaseType)
	}
	if c.Industry != DefaultIndustry {
		t.Errorf("expected industry %q, got %q", DefaultIndustry, c.Industry)
	}
	if c.Opening != nil || c.Frameworks != nil || c.Conclusion != nil {
		t.Errorf("expected no optional facets, got %+v", c)
	}
	if c.Quantitative != nil || c.Clarifying != nil || c.Brainstorming != nil || c.IndustryPrompt != "" {
		t.Errorf("expected empty slices, got %+v", c)
	}
}
