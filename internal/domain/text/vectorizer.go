package text

import (
	"fmt"
	"math"
)

// Weighting selects how term frequencies are scaled.
type Weighting string

const (
	// WeightingTF emits raw term frequency: count / total tokens. This is the default
	// and keeps cluster assignments compatible with earlier runs.
	WeightingTF Weighting = "tf"
	// WeightingTFIDF multiplies term frequency by ln(N / df). Opt-in: it changes clustering outcomes.
	WeightingTFIDF Weighting = "tfidf"
)

// ParseWeighting validates a weighting name. Empty means WeightingTF.
func ParseWeighting(s string) (Weighting, error) {
	switch Weighting(s) {
	case "", WeightingTF:
		return WeightingTF, nil
	case WeightingTFIDF:
		return WeightingTFIDF, nil
	default:
		return "", fmt.Errorf("unknown weighting %q (want tf or tfidf)", s)
	}
}

// Features is the text vector of one document. Len(Vector) equals the vocabulary size.
type Features struct {
	Filename string
	Vector   []float64
}

// Vectorizer maps text onto a fixed vocabulary.
type Vectorizer struct {
	vocab   *Vocabulary
	weights []float64 // nil for plain TF
}

// NewVectorizer creates a vectorizer. For WeightingTFIDF the IDF weights are computed once
// from the vocabulary's document frequencies; terms with unknown frequency get weight 0.
func NewVectorizer(vocab *Vocabulary, w Weighting) *Vectorizer {
	vz := &Vectorizer{vocab: vocab}
	if w != WeightingTFIDF {
		return vz
	}
	vz.weights = make([]float64, vocab.Len())
	n := float64(vocab.Docs())
	for i, df := range vocab.docFreq {
		if df > 0 && n > 0 {
			vz.weights[i] = math.Log(n / float64(df))
		}
	}
	return vz
}

// Dim returns the vector length produced by Vectorize.
func (vz *Vectorizer) Dim() int { return vz.vocab.Len() }

// Vectorize computes the term-frequency vector of text.
// The denominator is the total token count including stop words and out-of-vocabulary tokens;
// a text without tokens yields the zero vector.
func (vz *Vectorizer) Vectorize(filename, text string) Features {
	vec := make([]float64, vz.vocab.Len())
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return Features{Filename: filename, Vector: vec}
	}

	counts := make([]int, len(vec))
	for _, tok := range tokens {
		if i, ok := vz.vocab.index[tok]; ok {
			counts[i]++
		}
	}

	total := float64(len(tokens))
	for i, c := range counts {
		if c == 0 {
			continue
		}
		vec[i] = float64(c) / total
		if vz.weights != nil {
			vec[i] *= vz.weights[i]
		}
	}
	return Features{Filename: filename, Vector: vec}
}
