package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MikeSquared-Agency/casebase/internal/knowledge"
)

// ErrNoSnapshot is returned when the snapshot table is empty or the requested
// build does not exist.
var ErrNoSnapshot = errors.New("no knowledge snapshot")

// SnapshotInfo describes a stored build without its document.
type SnapshotInfo struct {
	ID         uuid.UUID `json:"id"`
	BuiltAt    time.Time `json:"built_at"`
	TotalCases int       `json:"total_cases"`
}

// SaveSnapshot stores kb keyed by its build id. Saving the same build twice
// overwrites the earlier row.
func (s *Store) SaveSnapshot(ctx context.Context, kb *knowledge.KnowledgeBase) error {
	doc, err := json.Marshal(kb)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO knowledge_snapshots (id, built_at, total_cases, document)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET built_at = EXCLUDED.built_at, total_cases = EXCLUDED.total_cases, document = EXCLUDED.document`,
		kb.BuildID, kb.LastUpdated, kb.TotalCasesAnalyzed, doc,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recently built knowledge base.
func (s *Store) LatestSnapshot(ctx context.Context) (*knowledge.KnowledgeBase, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT document FROM knowledge_snapshots
		ORDER BY built_at DESC
		LIMIT 1`)
	return scanSnapshot(row)
}

func (s *Store) GetSnapshot(ctx context.Context, id uuid.UUID) (*knowledge.KnowledgeBase, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT document FROM knowledge_snapshots WHERE id = $1`, id)
	return scanSnapshot(row)
}

// ListSnapshots returns up to limit builds, newest first.
func (s *Store) ListSnapshots(ctx context.Context, limit int) ([]SnapshotInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, built_at, total_cases FROM knowledge_snapshots
		ORDER BY built_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	infos := []SnapshotInfo{}
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.BuiltAt, &info.TotalCases); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return infos, nil
}

func scanSnapshot(row pgx.Row) (*knowledge.KnowledgeBase, error) {
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}

	var kb knowledge.KnowledgeBase
	if err := json.Unmarshal(doc, &kb); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &kb, nil
}
