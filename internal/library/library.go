// Package library serves the pre-segmented case library: multi-criteria
// lookup, random selection and hydration of full case bodies.
//
// A CaseLibrary is read-mostly. Reload replaces its state and is not safe to
// call concurrently with queries; callers that reload while serving must
// serialize access themselves.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	indexFile        = "index.json"
	caseFile         = "case.json"
	exhibitsDir      = "exhibits"
	defaultListLimit = 100
	defaultFindLimit = 10
)

type state int

const (
	stateUnloaded state = iota
	stateLoaded
	stateUnavailable
)

// Picker chooses an index in [0, n). *math/rand/v2.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type CaseLibrary struct {
	dir    string
	logger *slog.Logger
	picker Picker

	state state
	index *Index
}

// New opens the library rooted at dir and loads its index. A missing or
// malformed index leaves the library unavailable rather than failing.
func New(dir string, logger *slog.Logger) *CaseLibrary {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	l := &CaseLibrary{
		dir:    dir,
		logger: logger,
		picker: globalRand{},
	}
	l.load()
	return l
}

// SetPicker replaces the randomness source used by FindCase.
func (l *CaseLibrary) SetPicker(p Picker) {
	l.picker = p
}

// Reload discards the current index and reads it again from disk.
func (l *CaseLibrary) Reload() bool {
	return l.load()
}

func (l *CaseLibrary) load() bool {
	l.state = stateUnloaded
	l.index = nil

	path := filepath.Join(l.dir, indexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		l.state = stateUnavailable
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("case library index not found, run segmentation first", "path", path)
		} else {
			l.logger.Error("failed to read case library index", "path", path, "error", err)
		}
		return false
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		l.state = stateUnavailable
		l.logger.Error("failed to parse case library index", "path", path, "error", err)
		return false
	}

	l.index = &idx
	l.state = stateLoaded
	l.logger.Info("case library loaded", "total_cases", idx.TotalCases, "listings", len(idx.Cases))
	return true
}

// IsAvailable reports whether the index loaded and lists at least one case.
func (l *CaseLibrary) IsAvailable() bool {
	return l.state == stateLoaded && l.index != nil && l.index.TotalCases > 0
}

// Statistics returns nil when the library is unavailable.
func (l *CaseLibrary) Statistics() *Stats {
	if !l.IsAvailable() {
		return nil
	}
	return &Stats{
		TotalCases:   l.index.TotalCases,
		LastUpdated:  l.index.LastUpdated,
		ByType:       l.index.Statistics.ByType,
		ByDifficulty: l.index.Statistics.ByDifficulty,
		ByIndustry:   l.index.Statistics.ByIndustry,
	}
}

// FindCase picks one listing uniformly at random among those matching c and
// hydrates it. Identical queries may return different cases.
func (l *CaseLibrary) FindCase(c Criteria) (*Case, error) {
	if !l.IsAvailable() {
		return nil, ErrUnavailable
	}

	var candidates []Listing
	for _, listing := range l.index.Cases {
		if matches(listing, c, true) {
			candidates = append(candidates, listing)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}

	selected := candidates[l.picker.IntN(len(candidates))]
	return l.LoadCase(selected.CaseID)
}

// RandomCase is FindCase under another name.
func (l *CaseLibrary) RandomCase(c Criteria) (*Case, error) {
	return l.FindCase(c)
}

// LoadCase hydrates the case with the given id. ErrCaseNotFound means the id
// is not indexed; ErrCaseUnreadable means its backing file is missing or
// corrupt.
func (l *CaseLibrary) LoadCase(caseID string) (*Case, error) {
	if !l.IsAvailable() {
		return nil, ErrUnavailable
	}

	listing, ok := l.listing(caseID)
	if !ok {
		l.logger.Warn("case not found in index", "case_id", caseID)
		return nil, fmt.Errorf("%w: %s", ErrCaseNotFound, caseID)
	}

	path := filepath.Join(l.dir, "..", listing.Path, caseFile)
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error("case file not readable", "case_id", caseID, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrCaseUnreadable, caseID, err)
	}

	var c Case
	if err := json.Unmarshal(data, &c); err != nil {
		l.logger.Error("case file not parseable", "case_id", caseID, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrCaseUnreadable, caseID, err)
	}

	resolveAssets(&c, filepath.Dir(path))
	return &c, nil
}

// ListCases returns listings matching c, ignoring c.Tags, sorted by quality
// score descending. A non-positive limit means 100.
func (l *CaseLibrary) ListCases(c Criteria, limit int) []Listing {
	if !l.IsAvailable() {
		return []Listing{}
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	results := []Listing{}
	for _, listing := range l.index.Cases {
		if matches(listing, c, false) {
			results = append(results, listing)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].QualityScore > results[j].QualityScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// SearchCases matches query case-insensitively against title, tags and
// industry and returns the first matches in index order. A non-positive
// limit means 10.
func (l *CaseLibrary) SearchCases(query string, limit int) []Listing {
	if !l.IsAvailable() || query == "" {
		return []Listing{}
	}
	if limit <= 0 {
		limit = defaultFindLimit
	}

	q := strings.ToLower(query)
	results := []Listing{}
	for _, listing := range l.index.Cases {
		if len(results) == limit {
			break
		}
		if containsFold(listing.Title, q) || containsFold(listing.Industry, q) || anyContainsFold(listing.Tags, q) {
			results = append(results, listing)
		}
	}
	return results
}

// CaseTypes lists the case types recorded in the index statistics.
func (l *CaseLibrary) CaseTypes() []string {
	if !l.IsAvailable() {
		return []string{}
	}
	return keys(l.index.Statistics.ByType)
}

func (l *CaseLibrary) Difficulties() []string {
	if !l.IsAvailable() {
		return []string{}
	}
	return keys(l.index.Statistics.ByDifficulty)
}

func (l *CaseLibrary) Industries() []string {
	if !l.IsAvailable() {
		return []string{}
	}
	return keys(l.index.Statistics.ByIndustry)
}

func (l *CaseLibrary) listing(caseID string) (Listing, bool) {
	for _, listing := range l.index.Cases {
		if listing.CaseID == caseID {
			return listing, true
		}
	}
	return Listing{}, false
}

func matches(listing Listing, c Criteria, withTags bool) bool {
	if c.CaseType != "" && listing.CaseType != c.CaseType {
		return false
	}
	if c.Difficulty != "" && listing.Difficulty != c.Difficulty {
		return false
	}
	if c.Industry != "" && listing.Industry != c.Industry {
		return false
	}
	if withTags && !hasAllTags(listing.Tags, c.Tags) {
		return false
	}
	return listing.QualityScore >= c.MinQuality
}

func hasAllTags(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, t := range have {
		set[t] = struct{}{}
	}
	for _, t := range want {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

// resolveAssets rewrites exhibit files and visual asset paths relative to
// caseDir.
func resolveAssets(c *Case, caseDir string) {
	exhibits, _ := c.Content["exhibits"].([]any)
	for _, e := range exhibits {
		exhibit, ok := e.(map[string]any)
		if !ok {
			continue
		}
		files, ok := exhibit["files"].(map[string]any)
		if !ok {
			continue
		}
		for kind, v := range files {
			rel, ok := v.(string)
			if !ok || rel == "" || filepath.IsAbs(rel) {
				continue
			}
			files[kind] = filepath.Join(caseDir, rel)
		}
	}
	for i := range c.VisualAssets.Images {
		img := &c.VisualAssets.Images[i]
		img.Filepath = filepath.Join(caseDir, exhibitsDir, img.Filename)
	}
	for i := range c.VisualAssets.Screenshots {
		shot := &c.VisualAssets.Screenshots[i]
		shot.Filepath = filepath.Join(caseDir, exhibitsDir, shot.Filename)
	}
}

func containsFold(s, lowerQuery string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), lowerQuery)
}

func anyContainsFold(items []string, lowerQuery string) bool {
	for _, s := range items {
		if containsFold(s, lowerQuery) {
			return true
		}
	}
	return false
}

func keys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
