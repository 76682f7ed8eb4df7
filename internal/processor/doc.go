// Package processor converts scraped pages into structured AI use cases
// and retrieval chunks.
//
// Sections are classified with keyword rule tables (technology category,
// data type, model names); over-long sections are split before
// classification. The Chunker turns each use case into three retrieval
// documents (problem, solution, complete) for the vector store.
package processor
