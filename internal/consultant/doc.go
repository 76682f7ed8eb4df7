// Package consultant implements the RAG consultation service: it retrieves
// similar prior use cases from the vector store, asks the generator for a
// recommendation, and optionally runs a second generator pass whose output
// the extraction engine converts into a structured business-impact record.
package consultant
