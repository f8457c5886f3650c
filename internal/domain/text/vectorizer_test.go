package text

import (
	"math"
	"testing"
)

func TestVectorize_TermFrequency(t *testing.T) {
	vz := NewVectorizer(NewVocabulary([]string{"a", "b", "c"}), WeightingTF)

	f1 := vz.Vectorize("doc1", "a b")
	assertVector(t, f1.Vector, []float64{0.5, 0.5, 0})
	if f1.Filename != "doc1" {
		t.Errorf("Filename = %q", f1.Filename)
	}

	f2 := vz.Vectorize("doc2", "a b c")
	third := 1.0 / 3.0
	assertVector(t, f2.Vector, []float64{third, third, third})
}

func TestVectorize_DenominatorCountsAllTokens(t *testing.T) {
	vz := NewVectorizer(NewVocabulary([]string{"fox"}), WeightingTF)
	f := vz.Vectorize("d", "the fox and the hound")
	assertVector(t, f.Vector, []float64{0.2})
}

func TestVectorize_RepeatedTerms(t *testing.T) {
	vz := NewVectorizer(NewVocabulary([]string{"go", "rust"}), WeightingTF)
	f := vz.Vectorize("d", "Go go GO rust")
	assertVector(t, f.Vector, []float64{0.75, 0.25})
}

func TestVectorize_EmptyText(t *testing.T) {
	vz := NewVectorizer(NewVocabulary([]string{"a", "b"}), WeightingTF)
	f := vz.Vectorize("empty", "  ... ")
	if len(f.Vector) != 2 {
		t.Fatalf("len = %d, want 2", len(f.Vector))
	}
	for i, x := range f.Vector {
		if x != 0 || math.IsNaN(x) {
			t.Errorf("component %d = %v, want 0", i, x)
		}
	}
}

func TestVectorize_LengthMatchesVocabulary(t *testing.T) {
	v := BuildVocabulary([]string{"alpha beta", "gamma delta epsilon"})
	vz := NewVectorizer(v, WeightingTF)
	if vz.Dim() != v.Len() {
		t.Fatalf("Dim() = %d, want %d", vz.Dim(), v.Len())
	}
	for _, s := range []string{"alpha", "", "unknown words only", "gamma gamma"} {
		if got := len(vz.Vectorize("x", s).Vector); got != v.Len() {
			t.Errorf("Vectorize(%q) len = %d, want %d", s, got, v.Len())
		}
	}
}

func TestVectorize_TFIDF(t *testing.T) {
	texts := []string{"shared unique1", "shared unique2"}
	vz := NewVectorizer(BuildVocabulary(texts), WeightingTFIDF)

	f := vz.Vectorize("d1", texts[0])
	// terms: shared, unique1, unique2
	// shared appears in every document -> idf = ln(2/2) = 0
	// unique1: tf 0.5 * ln(2/1)
	assertVector(t, f.Vector, []float64{0, 0.5 * math.Ln2, 0})
}

func TestVectorize_TFIDFExplicitVocabularyIsZero(t *testing.T) {
	vz := NewVectorizer(NewVocabulary([]string{"a"}), WeightingTFIDF)
	assertVector(t, vz.Vectorize("d", "a a").Vector, []float64{0})
}

func TestParseWeighting(t *testing.T) {
	tests := []struct {
		in      string
		want    Weighting
		wantErr bool
	}{
		{"", WeightingTF, false},
		{"tf", WeightingTF, false},
		{"tfidf", WeightingTFIDF, false},
		{"bm25", "", true},
	}
	for _, tc := range tests {
		got, err := ParseWeighting(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseWeighting(%q) err = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseWeighting(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func assertVector(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}
