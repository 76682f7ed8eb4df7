package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fyrsmithlabs/consultd/internal/consultant"
	"github.com/fyrsmithlabs/consultd/internal/generator"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// defaultSearchK is the result count for search requests that omit k.
const defaultSearchK = 5

// handleConsult runs the full consultation flow: retrieval, recommendation,
// and optional business-impact analysis.
func (s *Server) handleConsult(c echo.Context) error {
	if s.consultant == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "consultation service not available")
	}

	var req ConsultRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid consult request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Problem) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "problem field is required")
	}

	rec, err := s.consultant.Suggest(c.Request().Context(), consultant.SuggestRequest{
		Problem:       req.Problem,
		Context:       req.Context,
		Industry:      req.Industry,
		CompanySize:   req.CompanySize,
		IncludeImpact: req.IncludeImpact,
		K:             req.K,
	})
	if err != nil {
		return s.consultError(err)
	}

	return c.JSON(http.StatusOK, ConsultResponse{
		Recommendations: rec.Recommendations,
		Confidence:      rec.Confidence,
		SimilarCases:    rec.SimilarCases,
		BusinessImpact:  rec.Impact,
	})
}

// handleImpact runs a standalone business-impact analysis.
func (s *Server) handleImpact(c echo.Context) error {
	if s.analyzer == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "impact analyzer not available")
	}

	var req ImpactRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid impact request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	impact, err := s.analyzer.Analyze(c.Request().Context(), consultant.ImpactRequest{
		Problem:     req.Problem,
		Solution:    req.AISolution,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
	})
	if err != nil {
		if errors.Is(err, consultant.ErrMissingInput) {
			return echo.NewHTTPError(http.StatusBadRequest, "problem and ai_solution fields are required")
		}
		return s.consultError(err)
	}

	return c.JSON(http.StatusOK, impact)
}

// handleSearch returns raw similar cases from the vector store.
func (s *Server) handleSearch(c echo.Context) error {
	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "vector store not available")
	}

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid search request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query field is required")
	}

	k := req.K
	if k <= 0 {
		k = defaultSearchK
	}

	results, err := s.store.Search(c.Request().Context(), req.Query, k)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			ID:       r.ID,
			Content:  r.Content,
			Score:    r.Score,
			Metadata: r.Metadata,
		}
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Query:   req.Query,
		Count:   len(out),
		Results: out,
	})
}

// handleStats reports collection counts from the vector store.
func (s *Server) handleStats(c echo.Context) error {
	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "vector store not available")
	}

	ctx := c.Request().Context()
	names, err := s.store.ListCollections(ctx)
	if err != nil {
		s.logger.Error("listing collections failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "stats unavailable")
	}

	resp := StatsResponse{Collections: []CollectionStats{}}
	for _, name := range names {
		info, err := s.store.GetCollectionInfo(ctx, name)
		if err != nil || info == nil {
			continue
		}
		resp.Collections = append(resp.Collections, CollectionStats{
			Name:       info.Name,
			PointCount: info.PointCount,
			VectorSize: info.VectorSize,
		})
		resp.TotalPoints += info.PointCount
	}

	return c.JSON(http.StatusOK, resp)
}

// consultError maps service errors to HTTP status codes. Generator
// failures surface as 502 so clients can tell upstream trouble from
// bad input.
func (s *Server) consultError(err error) error {
	switch {
	case errors.Is(err, consultant.ErrEmptyProblem):
		return echo.NewHTTPError(http.StatusBadRequest, "problem field is required")
	case errors.Is(err, generator.ErrGenerationFailed), errors.Is(err, generator.ErrEmptyResponse):
		s.logger.Error("generator failure", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "language model request failed")
	default:
		s.logger.Error("consultation failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
