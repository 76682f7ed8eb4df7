package processor

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/consultd/internal/vectorstore"
)

// Chunk types emitted per use case.
const (
	ChunkTypeProblem  = "problem"
	ChunkTypeSolution = "solution"
	ChunkTypeComplete = "complete"
)

// ChunkUseCases converts use cases into retrieval documents. Each use
// case yields a problem-focused, a solution-focused, and a complete
// chunk so queries match from either direction.
func ChunkUseCases(cases []UseCase) []vectorstore.Document {
	docs := make([]vectorstore.Document, 0, len(cases)*3)

	for _, uc := range cases {
		docs = append(docs,
			vectorstore.Document{
				ID:      uc.ID + "_" + ChunkTypeProblem,
				Content: problemText(uc),
				Metadata: chunkMetadata(uc, ChunkTypeProblem, map[string]interface{}{
					"business_problem": uc.BusinessProblem,
					"data_type":        uc.DataType,
				}),
			},
			vectorstore.Document{
				ID:      uc.ID + "_" + ChunkTypeSolution,
				Content: solutionText(uc),
				Metadata: chunkMetadata(uc, ChunkTypeSolution, map[string]interface{}{
					"recommended_tech": strings.Join(uc.RecommendedTech, ", "),
					"models":           strings.Join(uc.Models, ", "),
					"reasoning":        uc.Reasoning,
				}),
			},
			vectorstore.Document{
				ID:      uc.ID + "_" + ChunkTypeComplete,
				Content: completeText(uc),
				Metadata: chunkMetadata(uc, ChunkTypeComplete, map[string]interface{}{
					"business_problem": uc.BusinessProblem,
					"data_type":        uc.DataType,
					"recommended_tech": strings.Join(uc.RecommendedTech, ", "),
					"models":           strings.Join(uc.Models, ", "),
				}),
			},
		)
	}

	return docs
}

func chunkMetadata(uc UseCase, chunkType string, extra map[string]interface{}) map[string]interface{} {
	md := map[string]interface{}{
		"chunk_type":  chunkType,
		"use_case_id": uc.ID,
		"source":      uc.Source,
		"industry":    uc.Industry,
		"url":         uc.URL,
	}
	for k, v := range extra {
		md[k] = v
	}
	return md
}

func problemText(uc UseCase) string {
	return fmt.Sprintf(`Business Problem: %s
Data Type: %s
Context: This problem involves %s data and requires AI/ML solutions.`,
		uc.BusinessProblem, uc.DataType, uc.DataType)
}

func solutionText(uc UseCase) string {
	return fmt.Sprintf(`Recommended Technologies: %s
Specific Models/Approaches: %s
Reasoning: %s
This solution is appropriate for problems involving %s data.`,
		strings.Join(uc.RecommendedTech, ", "), modelsOrDefault(uc), uc.Reasoning, uc.DataType)
}

func completeText(uc UseCase) string {
	return fmt.Sprintf(`USE CASE: %s

DATA TYPE: %s

RECOMMENDED AI/ML TECHNOLOGIES: %s

SPECIFIC MODELS AND APPROACHES: %s

REASONING: %s

This is a proven approach for %s problems.`,
		uc.BusinessProblem, uc.DataType, strings.Join(uc.RecommendedTech, ", "),
		modelsOrDefault(uc), uc.Reasoning, strings.ToLower(uc.BusinessProblem))
}

func modelsOrDefault(uc UseCase) string {
	if len(uc.Models) == 0 {
		return "Various models"
	}
	return strings.Join(uc.Models, ", ")
}
