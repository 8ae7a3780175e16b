// Package retrieve implements the semantic retrieval stage: brute-force
// cosine top-k over an in-memory candidate universe, plus the adaptive-k
// policy that sizes the retrieval from query specificity.
package retrieve
