package similarity_test

import (
	"errors"
	"math"
	"testing"

	"github.com/scheckbl/scheckbl-cli/internal/dataset"
	"github.com/scheckbl/scheckbl-cli/internal/similarity"
)

func ds(entries ...string) dataset.Dataset {
	return dataset.Dataset{Type: "phrases", Category: "test", Entries: entries}
}

func TestRank_NormalizedLevenshtein(t *testing.T) {
	d := ds("idiot", "jerk")

	matches, err := similarity.Rank(d, "idio", 0.6, similarity.Levenshtein)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches=%v want exactly one", matches)
	}
	if matches[0].Entry != "idiot" {
		t.Fatalf("Entry=%q want idiot", matches[0].Entry)
	}
	// "idio" vs "idiot": one edit over five runes.
	if math.Abs(matches[0].Score-0.8) > 1e-6 {
		t.Fatalf("Score=%g want 0.8", matches[0].Score)
	}
}

func TestRank_InvalidThreshold(t *testing.T) {
	d := ds("idiot")
	for _, threshold := range []float64{-0.1, 1.1, 2, -5} {
		_, err := similarity.Rank(d, "idio", threshold, similarity.Levenshtein)
		if !errors.Is(err, similarity.ErrThreshold) {
			t.Fatalf("Rank(threshold=%g) err=%v, want ErrThreshold", threshold, err)
		}
	}
}

func TestRank_BoundaryThresholds(t *testing.T) {
	d := ds("idiot")
	for _, threshold := range []float64{0, 1} {
		if _, err := similarity.Rank(d, "idiot", threshold, similarity.Levenshtein); err != nil {
			t.Fatalf("Rank(threshold=%g): %v", threshold, err)
		}
	}
}

func TestRank_UnknownAlgorithm(t *testing.T) {
	if _, err := similarity.Rank(ds("idiot"), "idio", 0.5, similarity.Algorithm("soundex")); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
}

func TestRank_EmptyDataset(t *testing.T) {
	matches, err := similarity.Rank(ds(), "anything", 0.6, similarity.Levenshtein)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("matches=%v want empty", matches)
	}
}

func TestRank_SortedDescending(t *testing.T) {
	d := ds("jerk", "idiots", "idiot")

	matches, err := similarity.Rank(d, "idiot", 0.1, similarity.Levenshtein)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Fatalf("not sorted descending: %v", matches)
		}
	}
	if matches[0].Entry != "idiot" {
		t.Fatalf("best match=%q want idiot", matches[0].Entry)
	}
}

func TestRank_TiesKeepDatasetOrder(t *testing.T) {
	// Both entries are one edit away from the phrase, so scores tie.
	d := ds("ax", "ay")

	matches, err := similarity.Rank(d, "ab", 0.4, similarity.Levenshtein)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches=%v want two", matches)
	}
	if matches[0].Score != matches[1].Score {
		t.Fatalf("expected tie, got %v", matches)
	}
	if matches[0].Entry != "ax" || matches[1].Entry != "ay" {
		t.Fatalf("tie order=%v want dataset order", matches)
	}
}

func TestRank_RaisingThresholdShrinksResult(t *testing.T) {
	d := ds("idiot", "idiots", "jerk", "moron")
	phrase := "idio"

	var prev int = -1
	for _, threshold := range []float64{0.9, 0.6, 0.3, 0.0} {
		matches, err := similarity.Rank(d, phrase, threshold, similarity.Levenshtein)
		if err != nil {
			t.Fatalf("Rank(%g): %v", threshold, err)
		}
		for _, m := range matches {
			if m.Score < threshold {
				t.Fatalf("entry %q score %g below threshold %g", m.Entry, m.Score, threshold)
			}
		}
		if prev >= 0 && len(matches) < prev {
			t.Fatalf("lowering threshold shrank result: %d -> %d", prev, len(matches))
		}
		prev = len(matches)
	}
}

func TestRank_CaseInsensitive(t *testing.T) {
	matches, err := similarity.Rank(ds("IDIOT"), "idiot", 1, similarity.Levenshtein)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(matches) != 1 || matches[0].Score != 1.0 {
		t.Fatalf("matches=%v want exact case-insensitive match", matches)
	}
}

func TestScore(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		algo similarity.Algorithm
		want float64
	}{
		{"identical", "idiot", "idiot", similarity.Levenshtein, 1.0},
		{"empty left", "", "idiot", similarity.Levenshtein, 0.0},
		{"empty right", "idiot", "", similarity.JaroWinkler, 0.0},
		{"both empty", "", "", similarity.Cosine, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := similarity.Score(tc.a, tc.b, tc.algo); got != tc.want {
				t.Fatalf("Score(%q, %q)=%g want %g", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	pairs := [][2]string{
		{"idio", "idiot"},
		{"jackpot", "jack"},
		{"completely", "different"},
	}
	algos := []similarity.Algorithm{similarity.Levenshtein, similarity.JaroWinkler, similarity.Cosine}
	for _, p := range pairs {
		for _, algo := range algos {
			s := similarity.Score(p[0], p[1], algo)
			if s < 0 || s > 1 {
				t.Fatalf("Score(%q, %q, %s)=%g out of range", p[0], p[1], algo, s)
			}
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	cases := []struct {
		in      string
		want    similarity.Algorithm
		wantErr bool
	}{
		{"levenshtein", similarity.Levenshtein, false},
		{"LEVENSHTEIN", similarity.Levenshtein, false},
		{" jaro-winkler ", similarity.JaroWinkler, false},
		{"cosine", similarity.Cosine, false},
		{"soundex", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := similarity.ParseAlgorithm(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseAlgorithm(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAlgorithm(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}
