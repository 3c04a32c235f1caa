// Package slack posts build reports to a Slack channel.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/casebase/internal/knowledge"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

type Poster struct {
	token   string
	channel string
	client  *http.Client
	logger  *slog.Logger
	apiURL  string
}

func NewPoster(token, channel string, logger *slog.Logger) *Poster {
	return &Poster{
		token:   token,
		channel: channel,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  defaultPostMessageURL,
		logger:  logger,
	}
}

// PostBuildSummary posts the headline numbers of a build and threads the
// per-case-type and per-industry coverage under it.
func (p *Poster) PostBuildSummary(ctx context.Context, buildID string, s knowledge.Summary) error {
	ts, err := p.post(ctx, map[string]any{
		"channel": p.channel,
		"text":    formatBuildHeadline(buildID, s),
	})
	if err != nil {
		return err
	}
	p.logger.Info("posted build summary to slack", "ts", ts, "build_id", buildID)

	if detail := formatCoverage(s); detail != "" {
		if _, err := p.post(ctx, map[string]any{
			"channel":   p.channel,
			"thread_ts": ts,
			"text":      detail,
		}); err != nil {
			return fmt.Errorf("post coverage thread: %w", err)
		}
	}
	return nil
}

func (p *Poster) post(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		TS    string `json:"ts"`
		Error string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(respBody, &slackResp); err != nil {
		return "", fmt.Errorf("parse slack response: %w", err)
	}
	if !slackResp.OK {
		return "", fmt.Errorf("slack error: %s", slackResp.Error)
	}
	return slackResp.TS, nil
}

func formatBuildHeadline(buildID string, s knowledge.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Knowledge base rebuilt* (`%s`)\n", buildID)
	fmt.Fprintf(&sb, "Cases analyzed: %d\n", s.TotalCasesAnalyzed)
	fmt.Fprintf(&sb, "Case types: %d | Industries: %d | Framework types: %d | Quantitative patterns: %d",
		len(s.CaseTypes), len(s.Industries), s.FrameworkTypes, s.QuantitativeKinds)
	return sb.String()
}

func formatCoverage(s knowledge.Summary) string {
	var sb strings.Builder
	if len(s.CaseTypes) > 0 {
		sb.WriteString("*Opening patterns by case type*\n")
		for _, ct := range s.CaseTypes {
			fmt.Fprintf(&sb, "• %s: %d\n", ct.Type, ct.PatternCount)
		}
	}
	if len(s.Industries) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("*Cases by industry*\n")
		for _, ind := range s.Industries {
			fmt.Fprintf(&sb, "• %s: %d\n", ind.Industry, ind.CaseCount)
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
