package classify

import (
	"regexp"

	"github.com/quaesit/quaesit/core"
)

// Default rule tables. Patterns match against normalized (lowercase,
// whitespace-collapsed) query text. Order matters: tables are scanned
// top to bottom and the first hit wins.

// defaultSimpleRules cover queries answerable by structured lookup:
// names, titles, schools, practice areas, languages, years, locations.
var defaultSimpleRules = []Rule{
	{regexp.MustCompile(`\bnamed\b`), core.LabelSimple},
	{regexp.MustCompile(`\b(partners?|associates?|of counsel|counsel)\b`), core.LabelSimple},
	{regexp.MustCompile(`\b(went to|graduated|attended|studied at|class of)\b`), core.LabelSimple},
	{regexp.MustCompile(`\bspeaks?\b`), core.LabelSimple},
	{regexp.MustCompile(`\b(tax|corporate|litigation|antitrust|restructuring|real estate|capital markets|intellectual property)\s+(lawyers?|attorneys?|practice)\b`), core.LabelSimple},
	{regexp.MustCompile(`\b(office|based in|located in)\b`), core.LabelSimple},
}

// defaultComplexRules cover queries that need unstructured-text evidence:
// work with specific companies, deal types, industry experience.
var defaultComplexRules = []Rule{
	{regexp.MustCompile(`\bworked (on|with|for|at)\b`), core.LabelComplex},
	{regexp.MustCompile(`\b(represented|advised|defended|prosecuted|negotiated|litigated|handled)\b`), core.LabelComplex},
	{regexp.MustCompile(`\bexperienced? (with|in)\b`), core.LabelComplex},
	{regexp.MustCompile(`\b(ipos?|mergers?|acquisitions?|public offerings?)\b`), core.LabelComplex},
	{regexp.MustCompile(`\bhelped\b`), core.LabelComplex},
	{regexp.MustCompile(`\bcase for\b`), core.LabelComplex},
}
