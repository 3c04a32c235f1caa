package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// SubjectKnowledgeRebuilt is published after a knowledge base build is saved.
	SubjectKnowledgeRebuilt = "casebase.knowledge.rebuilt"
	// SubjectLibraryUpdated is published by the segmentation tool when the
	// library index on disk changes.
	SubjectLibraryUpdated = "casebase.library.updated"
	// SubjectCaseGenerated is published after a generated case is saved.
	SubjectCaseGenerated = "casebase.case.generated"
)

// KnowledgeRebuilt announces a freshly written knowledge base.
type KnowledgeRebuilt struct {
	BuildID            string    `json:"build_id"`
	TotalCasesAnalyzed int       `json:"total_cases_analyzed"`
	KnowledgePath      string    `json:"knowledge_path"`
	Timestamp          time.Time `json:"timestamp"`
}

// LibraryUpdated is consumed to trigger a library reload. All fields are
// informational.
type LibraryUpdated struct {
	TotalCases  int    `json:"total_cases"`
	LastUpdated string `json:"last_updated"`
}

type CaseGenerated struct {
	CaseID     string    `json:"case_id"`
	CaseType   string    `json:"case_type"`
	Difficulty string    `json:"difficulty"`
	Path       string    `json:"path"`
	Timestamp  time.Time `json:"timestamp"`
}

// ParseLibraryUpdated decodes a library update payload. An empty payload is
// valid and yields the zero event.
func ParseLibraryUpdated(data []byte) (LibraryUpdated, error) {
	var evt LibraryUpdated
	if len(data) == 0 {
		return evt, nil
	}
	if err := json.Unmarshal(data, &evt); err != nil {
		return evt, fmt.Errorf("parse library updated event: %w", err)
	}
	return evt, nil
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(ctx context.Context, url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.Name("casebase"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := c.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func (c *Client) Subscribe(subject string, handler func(subject string, data []byte)) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject)
	return nil
}

// Flush waits for published messages to reach the server.
func (c *Client) Flush() error {
	return c.conn.Flush()
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}
