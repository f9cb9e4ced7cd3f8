// Package retrieval ranks archival GAO reports against a hearing and returns
// the most relevant few as supporting context. Retrieval is best-effort: a
// failed search degrades to an empty result, never a failed generation.
package retrieval

import "strings"

const (
	maxTitleTerms     = 5
	maxCommitteeTerms = 3
	minTitleTermLen   = 4
)

// titleStopwords are dropped from hearing titles before searching; they
// appear in nearly every hearing title and carry no signal.
var titleStopwords = map[string]bool{
	"hearing":   true,
	"committee": true,
	"the":       true,
	"and":       true,
	"for":       true,
	"with":      true,
}

// committeeStopwords strip the structural words out of committee names,
// leaving the subject-matter terms.
var committeeStopwords = map[string]bool{
	"the":          true,
	"a":            true,
	"an":           true,
	"and":          true,
	"committee":    true,
	"subcommittee": true,
}

// BuildQuery derives a full-text search query from a hearing title and
// committee name. Deterministic: identical inputs always produce the same
// query string.
func BuildQuery(title, committee string) string {
	terms := extractTitleTerms(title)
	terms = append(terms, extractCommitteeTerms(committee)...)
	return strings.Join(terms, " ")
}

func extractTitleTerms(title string) []string {
	var terms []string
	for _, token := range tokenize(title) {
		if len(terms) == maxTitleTerms {
			break
		}
		if len(token) < minTitleTermLen || titleStopwords[token] {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

func extractCommitteeTerms(committee string) []string {
	var terms []string
	for _, token := range tokenize(committee) {
		if len(terms) == maxCommitteeTerms {
			break
		}
		if len(token) <= 2 || committeeStopwords[token] {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isAlphanumeric(r)
	})
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
