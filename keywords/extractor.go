// Copyright 2026 Quaesit Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	aho "github.com/anknown/ahocorasick"
)

// Keyword is a salient term extracted from a query.
// Canonical is the lowercase form used for matching; Display preserves the
// form the term had in the query (or the gazetteer's form for vocabulary
// hits that differ only in case).
type Keyword struct {
	Display   string
	Canonical string
}

var (
	quotedPhrasePattern = regexp.MustCompile(`"([^"]+)"`)
	capitalizedPattern  = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`)
)

// Extractor pulls named entities and domain-vocabulary terms out of query
// text. Vocabulary terms are matched in a single pass with an Aho-Corasick
// machine; quoted phrases and capitalized multi-word runs are picked up by
// syntactic cues.
type Extractor struct {
	machine *aho.Machine
	hasDict bool
}

// Option configures an Extractor.
type Option func(*extractorOptions)

type extractorOptions struct {
	vocabulary []string
}

// WithVocabulary replaces the default gazetteer.
// Terms are matched case-insensitively on word boundaries.
func WithVocabulary(terms []string) Option {
	return func(o *extractorOptions) {
		o.vocabulary = terms
	}
}

// NewExtractor creates an extractor and compiles its gazetteer.
func NewExtractor(opts ...Option) (*Extractor, error) {
	options := &extractorOptions{vocabulary: defaultVocabulary}
	for _, opt := range opts {
		opt(options)
	}

	e := &Extractor{}
	if len(options.vocabulary) == 0 {
		return e, nil
	}

	dict := make([][]rune, 0, len(options.vocabulary))
	for _, term := range options.vocabulary {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			dict = append(dict, []rune(term))
		}
	}
	sort.Slice(dict, func(i, j int) bool {
		return string(dict[i]) < string(dict[j])
	})

	machine := new(aho.Machine)
	if err := machine.Build(dict); err != nil {
		return nil, err
	}
	e.machine = machine
	e.hasDict = true

	return e, nil
}

// Extract returns the deduplicated keywords found in the query, in
// extraction order: gazetteer hits by position, then quoted phrases, then
// capitalized multi-word entities. An empty result is valid; it means the
// query is generic.
func (e *Extractor) Extract(query string) []Keyword {
	var found []Keyword
	seen := make(map[string]bool)

	add := func(display, canonical string) {
		canonical = strings.TrimSpace(canonical)
		if canonical == "" || seen[canonical] {
			return
		}
		seen[canonical] = true
		found = append(found, Keyword{Display: display, Canonical: canonical})
	}

	lowered := strings.ToLower(query)

	// Gazetteer terms, ordered by first occurrence in the query.
	if e.hasDict {
		type hit struct {
			term    string
			display string
			pos     int
		}
		var hits []hit
		matched := make(map[string]bool)
		for _, term := range e.machine.MultiPatternSearch([]rune(lowered), false) {
			word := string(term.Word)
			if matched[word] {
				continue
			}
			matched[word] = true
			if display, pos, ok := wholeWordMatch(query, word); ok {
				hits = append(hits, hit{term: word, display: display, pos: pos})
			}
		}
		sort.Slice(hits, func(i, j int) bool {
			if hits[i].pos != hits[j].pos {
				return hits[i].pos < hits[j].pos
			}
			return hits[i].term < hits[j].term
		})
		for _, h := range hits {
			add(h.display, h.term)
		}
	}

	// Quoted phrases carry explicit intent.
	for _, m := range quotedPhrasePattern.FindAllStringSubmatch(query, -1) {
		add(m[1], strings.ToLower(m[1]))
	}

	// Capitalized multi-word runs are likely organization names.
	for _, m := range capitalizedPattern.FindAllStringSubmatch(query, -1) {
		add(m[1], strings.ToLower(m[1]))
	}

	return found
}

// Canonicals returns just the canonical forms, in extraction order.
func Canonicals(kws []Keyword) []string {
	out := make([]string, len(kws))
	for i, kw := range kws {
		out[i] = kw.Canonical
	}
	return out
}

// wholeWordMatch finds the first case-insensitive occurrence of term in s
// that sits on word boundaries, and returns the matched slice of s as it
// appeared there. Matching is rune-wise on the original string, so lowercase
// forms with a different byte length cannot skew the slice. Substring hits
// inside larger words ("tv" in "latvia") are rejected.
func wholeWordMatch(s, term string) (string, int, bool) {
	runes := []rune(s)
	termRunes := []rune(term)
	if len(termRunes) == 0 {
		return "", 0, false
	}

	for i := 0; i+len(termRunes) <= len(runes); i++ {
		if !runesFoldEqual(runes[i:i+len(termRunes)], termRunes) {
			continue
		}
		if runeBoundary(runes, i-1) && runeBoundary(runes, i+len(termRunes)) {
			return string(runes[i : i+len(termRunes)]), i, true
		}
	}
	return "", 0, false
}

func runesFoldEqual(a, b []rune) bool {
	for i := range b {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}

// runeBoundary reports whether rune position i is outside the slice or holds
// a non-alphanumeric rune.
func runeBoundary(rs []rune, i int) bool {
	if i < 0 || i >= len(rs) {
		return true
	}
	return !unicode.IsLetter(rs[i]) && !unicode.IsDigit(rs[i])
}
