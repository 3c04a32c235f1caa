package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrCorpusNotFound is returned when the extraction output does not exist.
var ErrCorpusNotFound = errors.New("corpus not found: run the PDF extraction first")

// Load reads the extraction output at path. A missing or malformed file is
// fatal for a knowledge-base build.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
		}
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	return &f, nil
}
