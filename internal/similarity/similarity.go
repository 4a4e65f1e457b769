// Package similarity ranks dataset entries against a query phrase.
//
// Scores are normalized to [0,1]. The default metric is normalized
// Levenshtein similarity (1 - distance/maxLen); jaro-winkler and cosine are
// available as alternatives.
package similarity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/scheckbl/scheckbl-cli/internal/dataset"
)

// ErrThreshold indicates a similarity threshold outside [0,1].
var ErrThreshold = errors.New("threshold must be between 0.0 and 1.0")

// DefaultThreshold is the minimum score used when none is configured.
const DefaultThreshold = 0.6

// Algorithm selects the similarity metric.
type Algorithm string

const (
	Levenshtein Algorithm = "levenshtein"
	JaroWinkler Algorithm = "jaro-winkler"
	Cosine      Algorithm = "cosine"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = Levenshtein

// ParseAlgorithm validates and normalizes an algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case Levenshtein:
		return Levenshtein, nil
	case JaroWinkler:
		return JaroWinkler, nil
	case Cosine:
		return Cosine, nil
	default:
		return "", fmt.Errorf("unknown algorithm %q (use levenshtein, jaro-winkler, or cosine)", s)
	}
}

// Match pairs a dataset entry with its similarity score.
type Match struct {
	Entry string  `json:"entry"`
	Score float64 `json:"score"`
}

// Rank scores every dataset entry against phrase and returns the entries with
// score >= threshold, sorted by descending score. Ties keep dataset order.
// An empty dataset yields an empty result.
func Rank(d dataset.Dataset, phrase string, threshold float64, algo Algorithm) ([]Match, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %g", ErrThreshold, threshold)
	}
	if _, err := ParseAlgorithm(string(algo)); err != nil {
		return nil, err
	}

	query := fold(phrase)

	var matches []Match
	for _, entry := range d.Entries {
		score := Score(query, fold(entry), algo)
		if score >= threshold {
			matches = append(matches, Match{Entry: entry, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}

// Score computes the similarity between two strings using the given metric.
// Identical strings score 1; an empty side scores 0 against a non-empty one.
func Score(a, b string, algo Algorithm) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	var metric edlib.Algorithm
	switch algo {
	case JaroWinkler:
		metric = edlib.JaroWinkler
	case Cosine:
		metric = edlib.Cosine
	default:
		metric = edlib.Levenshtein
	}

	score, err := edlib.StringsSimilarity(a, b, metric)
	if err != nil {
		return 0.0
	}
	return float64(score)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
