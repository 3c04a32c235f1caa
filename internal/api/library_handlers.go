package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/casebase/internal/library"
)

// parseCriteria reads case_type, difficulty, industry, tags (comma
// separated) and min_quality from the query string.
func parseCriteria(r *http.Request) (library.Criteria, error) {
	q := r.URL.Query()
	c := library.Criteria{
		CaseType:   q.Get("case_type"),
		Difficulty: q.Get("difficulty"),
		Industry:   q.Get("industry"),
	}
	if raw := q.Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				c.Tags = append(c.Tags, tag)
			}
		}
	}
	if raw := q.Get("min_quality"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c, err
		}
		c.MinQuality = v
	}
	return c, nil
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func (s *Server) libraryStats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	stats := s.library.Statistics()
	s.mu.RUnlock()

	if stats == nil {
		s.writeLibraryError(w, library.ErrUnavailable)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) listCases(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid min_quality")
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	s.mu.RLock()
	cases := s.library.ListCases(c, limit)
	s.mu.RUnlock()

	s.writeJSON(w, http.StatusOK, map[string]any{"cases": cases, "count": len(cases)})
}

func (s *Server) searchCases(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	s.mu.RLock()
	cases := s.library.SearchCases(query, limit)
	s.mu.RUnlock()

	s.writeJSON(w, http.StatusOK, map[string]any{"query": query, "cases": cases, "count": len(cases)})
}

func (s *Server) randomCase(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid min_quality")
		return
	}

	s.mu.RLock()
	found, err := s.library.FindCase(c)
	s.mu.RUnlock()

	if err != nil {
		s.writeLibraryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, found)
}

func (s *Server) getCase(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseID")

	s.mu.RLock()
	found, err := s.library.LoadCase(caseID)
	s.mu.RUnlock()

	if err != nil {
		s.writeLibraryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, found)
}

func (s *Server) caseTypes(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, map[string][]string{"types": s.library.CaseTypes()})
}

func (s *Server) difficulties(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, map[string][]string{"difficulties": s.library.Difficulties()})
}

func (s *Server) industries(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, map[string][]string{"industries": s.library.Industries()})
}
