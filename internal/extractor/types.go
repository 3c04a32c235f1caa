package extractor

// Defaults applied when a record carries no grouping label.
const (
	DefaultCaseType = "general"
	DefaultIndustry = "General"
)

// Quantitative pattern kinds.
const (
	KindRevenueCalculation    = "revenue_calculation"
	KindMarketSizing          = "market_sizing"
	KindProfitabilityAnalysis = "profitability_analysis"
)

// Brainstorming categories, in classification priority order.
const (
	CategoryRisks          = "risks"
	CategoryFactors        = "factors"
	CategoryConsiderations = "considerations"
	CategoryApproaches     = "approaches"
	CategoryOther          = "other"
)

// StructureFlags records which sections a case contains.
type StructureFlags struct {
	HasPrompt     bool `json:"has_prompt"`
	HasClarifying bool `json:"has_clarifying"`
	HasFramework  bool `json:"has_framework"`
	HasQuestions  bool `json:"has_questions"`
	QuestionCount int  `json:"question_count"`
	HasExhibits   bool `json:"has_exhibits"`
	HasConclusion bool `json:"has_conclusion"`
}

// OpeningPattern pairs an opening prompt excerpt with its placeholder form.
type OpeningPattern struct {
	Original string `json:"original"`
	Pattern  string `json:"pattern"`
}

// FrameworkSplit partitions a case's framework labels.
type FrameworkSplit struct {
	Primary  []string
	Advanced []string
}

type QuantitativeExample struct {
	Kind string
	Text string
}

type BrainstormPrompt struct {
	Category string
	Text     string
}

type ConclusionFlags struct {
	HasRecommendation bool `json:"has_recommendation"`
	HasRisks          bool `json:"has_risks"`
	HasNextSteps      bool `json:"has_next_steps"`
	HasQuantification bool `json:"has_quantification"`
}

type ConclusionFormat struct {
	Structure ConclusionFlags `json:"structure"`
	Example   string          `json:"example"`
}

// Contribution is everything one case record adds to the knowledge base.
// Nil pointers and empty slices mean the facet had nothing to contribute.
type Contribution struct {
	CaseType string
	Industry string

	Structure      StructureFlags
	Opening        *OpeningPattern
	Frameworks     *FrameworkSplit
	Quantitative   []QuantitativeExample
	IndustryPrompt string
	Clarifying     []string
	Brainstorming  []BrainstormPrompt
	Conclusion     *ConclusionFormat
}
