// Package http provides the consultd HTTP API.
package http

import (
	"github.com/fyrsmithlabs/consultd/internal/consultant"
	"github.com/fyrsmithlabs/consultd/internal/vectorstore"
)

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status     string          `json:"status"`
	Components map[string]bool `json:"components"`
}

// ConsultRequest is the request body for POST /api/v1/consult.
type ConsultRequest struct {
	Problem       string `json:"problem"`
	Context       string `json:"context,omitempty"`
	Industry      string `json:"industry,omitempty"`
	CompanySize   string `json:"company_size,omitempty"`
	IncludeImpact bool   `json:"include_impact"`
	K             int    `json:"k,omitempty"`
}

// ConsultResponse is the response body for POST /api/v1/consult.
type ConsultResponse struct {
	Recommendations string                     `json:"recommendations"`
	Confidence      string                     `json:"confidence"`
	SimilarCases    []vectorstore.SearchResult `json:"similar_cases,omitempty"`
	BusinessImpact  *consultant.BusinessImpact `json:"businessImpact"`
}

// ImpactRequest is the request body for POST /api/v1/impact.
type ImpactRequest struct {
	Problem     string `json:"problem"`
	AISolution  string `json:"ai_solution"`
	Industry    string `json:"industry,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
}

// SearchRequest is the request body for POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k,omitempty"`
}

// SearchResponse is the response body for POST /api/v1/search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []SearchResult `json:"results"`
}

// SearchResult is one similar case in a search response.
type SearchResult struct {
	ID       string                 `json:"id"`
	Content  string                 `json:"content"`
	Score    float32                `json:"score"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// StatsResponse is the response body for GET /api/v1/stats.
type StatsResponse struct {
	Collections []CollectionStats `json:"collections"`
	TotalPoints int               `json:"total_points"`
}

// CollectionStats describes one vector store collection.
type CollectionStats struct {
	Name       string `json:"name"`
	PointCount int    `json:"point_count"`
	VectorSize int    `json:"vector_size"`
}
