package knowledge

import (
	"testing"

	"github.com/MikeSquared-Agency/casebase/internal/extractor"
)

type fixedPicker int

func (f fixedPicker) IntN(n int) int { return int(f) % n }

func TestSelectRelevant_KnownIndustry(t *testing.T) {
	kb := Build(sampleCorpus(), buildInfo())

	rp := SelectRelevant(kb, "profitability", "Retail", fixedPicker(0))
	if len(rp.OpeningExamples) != 1 {
		t.Errorf("expected 1 opening example, got %d", len(rp.OpeningExamples))
	}
	if rp.Frameworks == nil || len(rp.Frameworks.Primary) != 1 {
		t.Errorf("expected profitability frameworks, got %+v", rp.Frameworks)
	}
	if rp.IndustryContext == nil || rp.IndustryContext.Name != "Retail" {
		t.Fatalf("expected Retail context, got %+v", rp.IndustryContext)
	}
	if len(rp.QuantitativeExamples) != 3 {
		t.Errorf("expected 3 quantitative kinds, got %+v", rp.QuantitativeExamples)
	}
	if rp.QuantitativeExamples[0].Type != extractor.KindMarketSizing {
		t.Errorf("expected kinds sorted by name, got %q first", rp.QuantitativeExamples[0].Type)
	}
}

func TestSelectRelevant_RandomIndustryAndMissingKeys(t *testing.T) {
	kb := Build(sampleCorpus(), buildInfo())

	rp := SelectRelevant(kb, "pricing", "", fixedPicker(1))
	if len(rp.OpeningExamples) != 0 {
		t.Errorf("expected no openings for unknown case type, got %+v", rp.OpeningExamples)
	}
	if rp.Frameworks != nil {
		t.Errorf("expected no frameworks for unknown case type")
	}
	// Industries sorted: General, Retail.
	if rp.IndustryContext == nil || rp.IndustryContext.Name != "Retail" {
		t.Errorf("expected picker to choose Retail, got %+v", rp.IndustryContext)
	}
}

func TestSelectRelevant_EmptyKnowledgeBase(t *testing.T) {
	rp := SelectRelevant(Build(nil, buildInfo()), "profitability", "Retail", fixedPicker(0))
	if rp.IndustryContext != nil || rp.Frameworks != nil {
		t.Errorf("expected nothing selected, got %+v", rp)
	}
	if rp.OpeningExamples == nil || rp.BrainstormingPrompts == nil || rp.ClarifyingPatterns == nil {
		t.Error("expected empty, non-nil slices")
	}
}
