package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotBuilt is returned by Load when no knowledge base has been written yet.
var ErrNotBuilt = errors.New("knowledge base not found: run the build first")

// Save writes kb as indented JSON. The document is written to a temporary
// file and renamed into place so readers never observe a partial build.
func Save(path string, kb *KnowledgeBase) error {
	data, err := json.MarshalIndent(kb, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal knowledge base: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".knowledge-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write knowledge base: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close knowledge base: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename knowledge base: %w", err)
	}
	return nil
}

func Load(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotBuilt, path)
		}
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	kb := empty()
	if err := json.Unmarshal(data, kb); err != nil {
		return nil, fmt.Errorf("parse knowledge base %s: %w", path, err)
	}
	return kb, nil
}
