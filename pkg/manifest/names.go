package manifest

import (
	"strings"
	"unicode"
)

// Words that disqualify a candidate line from being a consignee name.
// Arrival notices surround their names with carrier, customs and layout
// vocabulary, and some of it is capitalized just like a name.
var nameExclusions = map[string]struct{}{
	"ltd": {}, "limited": {}, "plc": {}, "llp": {}, "inc": {}, "gmbh": {},
	"shipping": {}, "logistics": {}, "freight": {}, "forwarding": {},
	"container": {}, "terminal": {}, "depot": {}, "warehouse": {},
	"arrival": {}, "notice": {}, "advice": {}, "vessel": {}, "voyage": {},
	"customs": {}, "hmrc": {}, "consignee": {}, "reference": {}, "ref": {},
	"total": {}, "page": {}, "date": {},
}

// CleanCandidateName strips the punctuation noise that surrounds names in
// extracted PDF text.
func CleanCandidateName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, ":;,.|-")
	return strings.TrimSpace(s)
}

// LooksLikePersonName reports whether a candidate reads like a consignee
// person name: two to four words, each capitalized and alphabetic, none
// from the exclusion vocabulary.
func LooksLikePersonName(s string) bool {
	words := strings.Fields(s)
	if len(words) < 2 || len(words) > 4 {
		return false
	}

	for _, w := range words {
		if _, excluded := nameExclusions[strings.ToLower(strings.Trim(w, ".,"))]; excluded {
			return false
		}
		runes := []rune(w)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes[1:] {
			if !unicode.IsLetter(r) && r != '-' && r != '\'' {
				return false
			}
		}
	}
	return true
}
