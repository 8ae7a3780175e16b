// Package keywords extracts salient terms from query text: gazetteer
// vocabulary (organizations, industry terms) matched with an Aho-Corasick
// machine, plus quoted phrases and capitalized multi-word entities. The
// extracted keywords drive candidate pruning and the adaptive retrieval
// size.
package keywords
