// Package builder runs the offline knowledge-base build: load the corpus,
// fold every case through the extractor, save the result and announce it.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/casebase/internal/corpus"
	"github.com/MikeSquared-Agency/casebase/internal/extractor"
	"github.com/MikeSquared-Agency/casebase/internal/hermes"
	"github.com/MikeSquared-Agency/casebase/internal/knowledge"
)

const progressEvery = 10

// SnapshotStore persists a copy of each build. *store.Store satisfies it.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, kb *knowledge.KnowledgeBase) error
}

// Publisher announces finished builds. *hermes.Client satisfies it.
type Publisher interface {
	Publish(subject string, data any) error
}

// Notifier reports finished builds to humans. *slack.Poster satisfies it.
type Notifier interface {
	PostBuildSummary(ctx context.Context, buildID string, s knowledge.Summary) error
}

type Builder struct {
	corpusPath    string
	knowledgePath string
	store         SnapshotStore
	publisher     Publisher
	notifier      Notifier
	logger        *slog.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

func New(corpusPath, knowledgePath string, logger *slog.Logger) *Builder {
	return &Builder{
		corpusPath:    corpusPath,
		knowledgePath: knowledgePath,
		logger:        logger,
		now:           time.Now,
		newID:         uuid.New,
	}
}

// WithStore enables snapshot persistence.
func (b *Builder) WithStore(s SnapshotStore) *Builder {
	b.store = s
	return b
}

// WithPublisher enables the rebuilt event.
func (b *Builder) WithPublisher(p Publisher) *Builder {
	b.publisher = p
	return b
}

// WithNotifier enables the build report.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// Run performs a full rebuild. Corpus and save failures abort the build;
// snapshot, publish and notify failures are logged and the build still
// succeeds.
func (b *Builder) Run(ctx context.Context) (*knowledge.KnowledgeBase, error) {
	b.logger.Info("loading corpus", "path", b.corpusPath)
	f, err := corpus.Load(b.corpusPath)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	b.logger.Info("corpus loaded", "cases", len(f.Cases), "sources", len(f.Sources))

	acc := knowledge.NewAccumulator()
	for i, rec := range f.Cases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build cancelled after %d cases: %w", i, err)
		}
		if i%progressEvery == 0 {
			b.logger.Info("processing case", "index", i+1, "total", len(f.Cases))
		}
		acc.Add(extractor.Extract(rec))
	}

	kb := acc.Finish(knowledge.BuildInfo{
		BuildID: b.newID(),
		BuiltAt: b.now(),
		Sources: []string{b.corpusPath},
	})

	if err := knowledge.Save(b.knowledgePath, kb); err != nil {
		return nil, fmt.Errorf("save knowledge base: %w", err)
	}
	b.logger.Info("knowledge base saved", "path", b.knowledgePath, "build_id", kb.BuildID)

	if b.store != nil {
		if err := b.store.SaveSnapshot(ctx, kb); err != nil {
			b.logger.Error("failed to store knowledge snapshot", "build_id", kb.BuildID, "error", err)
		}
	}

	if b.publisher != nil {
		if err := b.publisher.Publish(hermes.SubjectKnowledgeRebuilt, hermes.KnowledgeRebuilt{
			BuildID:            kb.BuildID.String(),
			TotalCasesAnalyzed: kb.TotalCasesAnalyzed,
			KnowledgePath:      b.knowledgePath,
			Timestamp:          kb.LastUpdated,
		}); err != nil {
			b.logger.Error("failed to publish rebuild event", "build_id", kb.BuildID, "error", err)
		}
	}

	summary := knowledge.Summarize(kb)
	knowledge.LogSummary(b.logger, summary)

	if b.notifier != nil {
		if err := b.notifier.PostBuildSummary(ctx, kb.BuildID.String(), summary); err != nil {
			b.logger.Error("failed to post build summary", "build_id", kb.BuildID, "error", err)
		}
	}
	return kb, nil
}
