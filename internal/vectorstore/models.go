package vectorstore

// Document represents a document to be stored in the vector store.
//
// For consultd the documents are use-case chunks produced by the
// processor: one use case becomes a problem chunk, a solution chunk,
// and a complete chunk, distinguished by the chunk_type metadata key.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Content is the text content of the document.
	Content string

	// Metadata contains additional key-value pairs for filtering.
	// Common fields: chunk_type, use_case_id, source, industry.
	Metadata map[string]interface{}

	// Collection is the target collection name for this document.
	// If empty, the store's default collection is used.
	Collection string
}

// SearchResult represents a search result from the vector store.
type SearchResult struct {
	// ID is the document identifier.
	ID string

	// Content is the document text content.
	Content string

	// Score is the similarity score (higher = more similar).
	Score float32

	// Metadata contains the document metadata.
	Metadata map[string]interface{}
}
