// Package generator produces synthetic case interviews from a knowledge base
// and a language model.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/MikeSquared-Agency/casebase/internal/anthropic"
	"github.com/MikeSquared-Agency/casebase/internal/knowledge"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	maxTokens = 4000
)

var (
	// ErrInvalidRequest is returned for a missing case type or an unknown
	// difficulty.
	ErrInvalidRequest = errors.New("invalid generation request")
	// ErrMalformedOutput is returned when the model reply is not a JSON object.
	ErrMalformedOutput = errors.New("model returned malformed case")
)

// requiredFields are only checked for presence; a missing one is logged.
var requiredFields = []string{"prompt", "clarifying_information", "framework_guidance", "questions"}

// Completer is the model call. *anthropic.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, system string, messages []anthropic.Message, maxTokens int) (string, error)
}

type Request struct {
	CaseType   string `json:"case_type"`
	Difficulty string `json:"difficulty"`
	Industry   string `json:"industry,omitempty"`
	FirmStyle  string `json:"firm_style,omitempty"`
}

func (r Request) validate() error {
	if r.CaseType == "" {
		return fmt.Errorf("%w: case_type is required", ErrInvalidRequest)
	}
	if _, ok := difficultyGuidelines[r.Difficulty]; !ok {
		return fmt.Errorf("%w: difficulty must be easy, medium or hard, got %q", ErrInvalidRequest, r.Difficulty)
	}
	return nil
}

// Case is a generated case document. Its shape is whatever the model
// returned, plus the fields set during post-processing.
type Case map[string]any

func (c Case) ID() string {
	id, _ := c["case_id"].(string)
	return id
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type Generator struct {
	llm    Completer
	outDir string
	picker knowledge.Picker
	logger *slog.Logger

	now   func() time.Time
	newID func() string
}

func New(llm Completer, outDir string, logger *slog.Logger) *Generator {
	return &Generator{
		llm:    llm,
		outDir: outDir,
		picker: globalRand{},
		logger: logger,
		now:    time.Now,
		newID:  func() string { return strings.ToLower(ulid.Make().String()) },
	}
}

// SetPicker replaces the source used to choose a random industry context.
func (g *Generator) SetPicker(p knowledge.Picker) {
	g.picker = p
}

// Generate asks the model for a new case shaped by patterns from kb.
func (g *Generator) Generate(ctx context.Context, kb *knowledge.KnowledgeBase, req Request) (Case, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	g.logger.Info("generating case", "case_type", req.CaseType, "difficulty", req.Difficulty, "industry", req.Industry)

	patterns := knowledge.SelectRelevant(kb, req.CaseType, req.Industry, g.picker)
	prompt := BuildPrompt(req, patterns, kb.TotalCasesAnalyzed)

	raw, err := g.llm.Complete(ctx, systemPrompt, []anthropic.Message{{Role: "user", Content: prompt}}, maxTokens)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	var c Case
	if err := json.Unmarshal([]byte(StripFences(raw)), &c); err != nil || c == nil {
		if err == nil {
			err = errors.New("null document")
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	g.postProcess(c, req)
	return c, nil
}

// postProcess stamps identity and forces the requested type and difficulty.
func (g *Generator) postProcess(c Case, req Request) {
	c["case_id"] = fmt.Sprintf("case_%s_%s", req.CaseType, g.newID())
	c["generated_at"] = g.now().UTC().Format(time.RFC3339)

	meta, ok := c["metadata"].(map[string]any)
	if !ok {
		meta = map[string]any{}
		c["metadata"] = meta
	}
	meta["case_type"] = req.CaseType
	if got, _ := meta["difficulty"].(string); got != req.Difficulty {
		g.logger.Warn("model ignored requested difficulty", "requested", req.Difficulty, "returned", meta["difficulty"])
	}
	meta["difficulty"] = req.Difficulty

	for _, field := range requiredFields {
		if v, ok := c[field]; !ok || v == nil || v == "" {
			g.logger.Warn("generated case missing field", "case_id", c.ID(), "field", field)
		}
	}
}

// Save writes c to <outDir>/<case_id>.json and returns the path.
func (g *Generator) Save(c Case) (string, error) {
	id := c.ID()
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("save case: invalid case id %q", id)
	}
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal case: %w", err)
	}
	path := filepath.Join(g.outDir, id+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write case: %w", err)
	}
	g.logger.Info("generated case saved", "case_id", id, "path", path)
	return path, nil
}

// BuildPrompt renders the user message for one request.
func BuildPrompt(req Request, rp knowledge.RelevantPatterns, totalCases int) string {
	industry := req.Industry
	if industry == "" {
		industry = "choose a realistic industry"
	}
	firmStyle := req.FirmStyle
	if firmStyle == "" {
		firmStyle = "BCG style (structured, data-driven)"
	}

	var industryBlock string
	if rp.IndustryContext != nil {
		industryBlock = fmt.Sprintf("\nINDUSTRY CONTEXT (%s):\n%s\n", rp.IndustryContext.Name, indentJSON(rp.IndustryContext))
	}

	upper := strings.ToUpper(req.Difficulty)
	return fmt.Sprintf(generationPrompt,
		upper,
		difficultyGuidelines[req.Difficulty],
		req.CaseType,
		industry,
		firmStyle,
		totalCases,
		indentJSON(rp.OpeningExamples),
		indentJSON(rp.Frameworks),
		indentJSON(rp.QuantitativeExamples),
		industryBlock,
		indentJSON(rp.ClarifyingPatterns),
		indentJSON(rp.BrainstormingPrompts),
		req.Difficulty,
		mathGuidance[req.Difficulty],
	)
}

// StripFences removes markdown code fences around a model reply.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func indentJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "null"
	}
	return string(data)
}
