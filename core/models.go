package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical source
// content always maps to the same entity.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Profiles are typically identified by their canonical URL.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// QueryLabel classifies how a query should be answered.
type QueryLabel int

const (
	// LabelUnknown means no classification rule matched.
	LabelUnknown QueryLabel = iota
	// LabelSimple means the query can be answered with a structured lookup.
	LabelSimple
	// LabelComplex means the query needs retrieval and per-candidate validation.
	LabelComplex
)

// String returns the lowercase label name.
func (l QueryLabel) String() string {
	switch l {
	case LabelSimple:
		return "simple"
	case LabelComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// ParseQueryLabel maps a label name to a QueryLabel.
// Unrecognized names map to LabelUnknown.
func ParseQueryLabel(s string) QueryLabel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return LabelSimple
	case "complex":
		return LabelComplex
	default:
		return LabelUnknown
	}
}

// Profile represents a single entity in the directory.
// Text holds the cached unstructured content used by pruning and validation;
// Vector is populated when the profile text is embedded.
type Profile struct {
	Id         ID
	Name       string
	URL        string
	Title      string
	Text       string
	Vector     []float32
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// VectorEntry is one element of the retrievable universe: a profile ID
// paired with its embedding vector.
type VectorEntry struct {
	ProfileId ID
	Vector    []float32
}

// CandidateRecord is a retrieval hit: a profile ID with its similarity score.
// Higher scores are more relevant.
type CandidateRecord struct {
	ProfileId ID
	Score     float32
}

// ValidationOutcome records the oracle's decision for one candidate.
// Score is the retrieval score carried through unchanged.
// Err distinguishes "the validator said no" (Accepted=false, Err=nil) from
// "the validator failed" (Accepted=false, Err!=nil).
type ValidationOutcome struct {
	ProfileId ID
	Score     float32
	Accepted  bool
	Rationale string
	Err       error
}

// Result is a final answer entry returned to the caller.
type Result struct {
	ProfileId ID
	Name      string
	URL       string
	Score     float32
	Rationale string
}

// NormalizeQuery produces the canonical form of a query used for cache keys:
// case-folded with runs of whitespace collapsed to single spaces.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
