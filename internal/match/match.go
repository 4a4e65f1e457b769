// Package match implements exact and in-text matching of blocklist entries.
//
// Matching policy, fixed for the whole tool: comparisons are case-insensitive
// and both keyword and entries are trimmed of surrounding whitespace. In-text
// matching only fires at word boundaries, so the entry "cat" does not match
// inside "category".
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/scheckbl/scheckbl-cli/internal/dataset"
)

// Hit records one occurrence of a blocklist entry in scanned text.
// Start and End are byte offsets into the case-folded text.
type Hit struct {
	Entry string `json:"entry"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Result holds all hits found in a text.
type Result struct {
	Found bool  `json:"found"`
	Hits  []Hit `json:"hits,omitempty"`
}

// Entries returns the distinct matched entries in dataset order.
func (r Result) Entries() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, h := range r.Hits {
		if _, ok := seen[h.Entry]; ok {
			continue
		}
		seen[h.Entry] = struct{}{}
		out = append(out, h.Entry)
	}
	return out
}

// Exists reports whether keyword exactly matches any dataset entry.
func Exists(d dataset.Dataset, keyword string) bool {
	needle := fold(keyword)
	if needle == "" {
		return false
	}
	for _, e := range d.Entries {
		if fold(e) == needle {
			return true
		}
	}
	return false
}

// Find scans text for occurrences of any dataset entry. Hits are reported in
// dataset order, then by position within the text. An empty result is not an
// error; it means the text is clean.
func Find(d dataset.Dataset, text string) Result {
	folded := fold(text)

	var res Result
	for _, entry := range d.Entries {
		needle := fold(entry)
		if needle == "" {
			continue
		}
		for _, span := range occurrences(folded, needle) {
			res.Hits = append(res.Hits, Hit{Entry: entry, Start: span[0], End: span[1]})
		}
	}
	res.Found = len(res.Hits) > 0
	return res
}

// occurrences returns the [start, end) spans where needle occurs in text at
// word boundaries.
func occurrences(text, needle string) [][2]int {
	var spans [][2]int
	for from := 0; ; {
		i := strings.Index(text[from:], needle)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(needle)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			spans = append(spans, [2]int{start, end})
		}
		from = start + 1
	}
	return spans
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
