// Package prune implements the keyword pruning stage: a cheap,
// order-preserving filter that drops retrieved candidates whose stored text
// mentions none of the query's keywords, so the LLM validation stage has
// less work to do.
package prune
