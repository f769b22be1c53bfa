// Package refmatch finds shipment reference codes in text and resolves
// them against the client manifest. A reference is three groups of three
// digits; the canonical form is slash-delimited ("000/527/962").
package refmatch

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/shipment-dossier/models"
)

// Candidate patterns, tried in order: canonical slash form first, then
// dashed, then whitespace-separated groups.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{3}/\d{3}/\d{3}`),
	regexp.MustCompile(`\d{3}-\d{3}-\d{3}`),
	regexp.MustCompile(`\d{3}[ \t]+\d{3}[ \t]+\d{3}`),
}

var separators = regexp.MustCompile(`[-\s]+`)
var canonical = regexp.MustCompile(`^\d{3}/\d{3}/\d{3}`)

// prefixLen is the length of the canonical NNN/NNN/NNN form. Manifest
// references sometimes carry trailing suffix characters; comparing on the
// first 11 characters absorbs them without rewriting the manifest.
const prefixLen = 11

// Normalize rewrites any accepted separator to the canonical slash form.
func Normalize(raw string) string {
	return separators.ReplaceAllString(strings.TrimSpace(raw), "/")
}

// IsReference reports whether s starts with a canonical reference code.
func IsReference(s string) bool {
	return canonical.MatchString(s)
}

// Candidates returns every pattern match in text: pattern order first,
// text order within a pattern.
func Candidates(text string) []string {
	var out []string
	for _, p := range patterns {
		out = append(out, p.FindAllString(text, -1)...)
	}
	return out
}

// Locate returns the earliest candidate in text together with the index
// just past it, for callers pairing a code with the content that follows.
func Locate(text string) (match string, end int, ok bool) {
	start := -1
	for _, p := range patterns {
		loc := p.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if start < 0 || loc[0] < start {
			start = loc[0]
			match = text[loc[0]:loc[1]]
			end = loc[1]
		}
	}
	return match, end, start >= 0
}

// Matcher resolves candidate codes against a loaded manifest.
type Matcher struct {
	manifest *models.Manifest
}

func NewMatcher(m *models.Manifest) *Matcher {
	return &Matcher{manifest: m}
}

// Resolve normalizes one candidate and compares its 11-character prefix
// against the manifest keys in insertion order. The winning manifest key
// is returned, not the candidate, so suffixed manifest references stay
// intact downstream.
func (m *Matcher) Resolve(candidate string) (reference, fullName string, ok bool) {
	norm := Normalize(candidate)
	if len(norm) < prefixLen {
		for _, e := range m.manifest.Entries() {
			if e.Reference == norm {
				return e.Reference, e.FullName, true
			}
		}
		return "", "", false
	}

	prefix := norm[:prefixLen]
	for _, e := range m.manifest.Entries() {
		if len(e.Reference) < prefixLen {
			continue
		}
		if e.Reference[:prefixLen] == prefix {
			return e.Reference, e.FullName, true
		}
	}
	return "", "", false
}

// ResolveText scans a text blob and resolves the first candidate that
// matches a manifest key. Candidates that resolve nowhere do not block
// later ones.
func (m *Matcher) ResolveText(text string) (reference, fullName string, ok bool) {
	for _, c := range Candidates(text) {
		if ref, name, ok := m.Resolve(c); ok {
			return ref, name, true
		}
	}
	return "", "", false
}

// FindVerbatim scans text for any manifest reference appearing exactly,
// in slash or dash form, in manifest order. This is the content fallback
// for single-client documents whose filename carries no code.
func (m *Matcher) FindVerbatim(text string) (reference, fullName string, ok bool) {
	for _, e := range m.manifest.Entries() {
		dashed := strings.ReplaceAll(e.Reference, "/", "-")
		if strings.Contains(text, e.Reference) || strings.Contains(text, dashed) {
			return e.Reference, e.FullName, true
		}
	}
	return "", "", false
}
