package extractor

import (
	"regexp"
	"unicode/utf8"
)

// Placeholders substituted into opening prompts.
const (
	PlaceholderCompany    = "{company}"
	PlaceholderNumber     = "{number}"
	PlaceholderCurrency   = "{currency}"
	PlaceholderPercentage = "{percentage}"
)

var (
	companyRe    = regexp.MustCompile(`\b[A-Z][a-z]+\s?(?:Mart|Corp|Inc|Ltd|Co|Group)\b`)
	numberRe     = regexp.MustCompile(`\d+(?:,\d+)*(?:\.\d+)?`)
	currencyRe   = regexp.MustCompile(`[$€£¥]\d+(?:,\d+)*(?:\.\d+)?[MBK]?`)
	percentageRe = regexp.MustCompile(`\d+(?:,\d+)*(?:\.\d+)?%`)
)

// rewriteStage is one step of the opening-pattern normalization.
type rewriteStage struct {
	name    string
	rewrite func(string) string
}

// normalizationStages run strictly in this order: company, number, currency,
// percentage. Reordering them changes the produced patterns.
var normalizationStages = []rewriteStage{
	{name: "company", rewrite: func(s string) string {
		return companyRe.ReplaceAllLiteralString(s, PlaceholderCompany)
	}},
	{name: "number", rewrite: replaceBareNumbers},
	{name: "currency", rewrite: func(s string) string {
		return currencyRe.ReplaceAllLiteralString(s, PlaceholderCurrency)
	}},
	{name: "percentage", rewrite: func(s string) string {
		return percentageRe.ReplaceAllLiteralString(s, PlaceholderPercentage)
	}},
}

// NormalizeOpening replaces concrete details in a prompt with placeholders.
func NormalizeOpening(prompt string) string {
	out := prompt
	for _, stage := range normalizationStages {
		out = stage.rewrite(out)
	}
	return out
}

// replaceBareNumbers substitutes numeric literals that are not owned by a
// later stage: a literal directly after a currency symbol or directly before
// a percent sign is left for the currency and percentage stages.
func replaceBareNumbers(s string) string {
	matches := numberRe.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	out := make([]byte, 0, len(s))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if precededByCurrency(s, start) || followedByPercent(s, end) {
			continue
		}
		out = append(out, s[last:start]...)
		out = append(out, PlaceholderNumber...)
		last = end
	}
	out = append(out, s[last:]...)
	return string(out)
}

func precededByCurrency(s string, start int) bool {
	if start == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:start])
	switch r {
	case '$', '€', '£', '¥':
		return true
	}
	return false
}

func followedByPercent(s string, end int) bool {
	return end < len(s) && s[end] == '%'
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
