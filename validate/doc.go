// Package validate implements the LLM validation stage: each surviving
// candidate's profile text is checked against the query by a language model,
// with concurrency bounded by a worker pool and requests paced in batches.
package validate
