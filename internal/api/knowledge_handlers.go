package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/casebase/internal/generator"
	"github.com/MikeSquared-Agency/casebase/internal/hermes"
	"github.com/MikeSquared-Agency/casebase/internal/knowledge"
)

func (s *Server) knowledgeBase() *knowledge.KnowledgeBase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kb
}

func (s *Server) knowledgeStats(w http.ResponseWriter, r *http.Request) {
	kb := s.knowledgeBase()
	if kb == nil {
		s.writeError(w, http.StatusServiceUnavailable, knowledge.ErrNotBuilt.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, knowledge.Summarize(kb))
}

func (s *Server) knowledgePatterns(w http.ResponseWriter, r *http.Request) {
	kb := s.knowledgeBase()
	if kb == nil {
		s.writeError(w, http.StatusServiceUnavailable, knowledge.ErrNotBuilt.Error())
		return
	}
	caseType := r.URL.Query().Get("case_type")
	if caseType == "" {
		s.writeError(w, http.StatusBadRequest, "case_type is required")
		return
	}
	s.writeJSON(w, http.StatusOK, knowledge.SelectRelevant(kb, caseType, r.URL.Query().Get("industry"), s.picker))
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.writeError(w, http.StatusServiceUnavailable, "case generation is not configured")
		return
	}
	kb := s.knowledgeBase()
	if kb == nil {
		s.writeError(w, http.StatusServiceUnavailable, knowledge.ErrNotBuilt.Error())
		return
	}

	var req generator.Request
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	c, err := s.generator.Generate(r.Context(), kb, req)
	if err != nil {
		if errors.Is(err, generator.ErrInvalidRequest) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("case generation failed", "case_type", req.CaseType, "difficulty", req.Difficulty, "error", err)
		s.writeError(w, http.StatusBadGateway, "case generation failed")
		return
	}

	path, err := s.generator.Save(c)
	if err != nil {
		s.logger.Error("failed to save generated case", "case_id", c.ID(), "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save generated case")
		return
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(hermes.SubjectCaseGenerated, hermes.CaseGenerated{
			CaseID:     c.ID(),
			CaseType:   req.CaseType,
			Difficulty: req.Difficulty,
			Path:       path,
			Timestamp:  time.Now().UTC(),
		}); err != nil {
			s.logger.Warn("failed to publish generated case event", "case_id", c.ID(), "error", err)
		}
	}

	s.writeJSON(w, http.StatusCreated, c)
}
