// Package pipeline orchestrates query answering: classification routes each
// query to a structured lookup or to the retrieval, pruning, and validation
// stages, and answered queries are cached with an LRU+TTL policy.
package pipeline
