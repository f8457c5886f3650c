package text

import "sort"

// Vocabulary is the sorted, deduplicated term list shared by every vector of one tier.
// It is read-only after construction and safe for concurrent use.
type Vocabulary struct {
	terms   []string
	index   map[string]int
	docFreq []int
	docs    int
}

// BuildVocabulary collects every non-stop-word token of texts, sorted lexicographically.
// Document frequencies are recorded for optional IDF weighting.
func BuildVocabulary(texts []string) *Vocabulary {
	df := make(map[string]int)
	for _, t := range texts {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(t) {
			if IsStopWord(tok) {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := newVocabulary(terms)
	v.docs = len(texts)
	for i, term := range v.terms {
		v.docFreq[i] = df[term]
	}
	return v
}

// NewVocabulary creates a vocabulary from an explicit term list (sorted and deduplicated here).
// Stop words are kept: the caller chose the terms. Document frequencies are unknown (zero).
func NewVocabulary(terms []string) *Vocabulary {
	sorted := append([]string(nil), terms...)
	sort.Strings(sorted)
	uniq := sorted[:0]
	for i, term := range sorted {
		if i > 0 && term == sorted[i-1] {
			continue
		}
		uniq = append(uniq, term)
	}
	return newVocabulary(uniq)
}

func newVocabulary(terms []string) *Vocabulary {
	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}
	return &Vocabulary{
		terms:   terms,
		index:   index,
		docFreq: make([]int, len(terms)),
	}
}

// Terms returns a copy of the ordered term list.
func (v *Vocabulary) Terms() []string { return append([]string(nil), v.terms...) }

// Len returns the vocabulary size, which is also the text vector dimensionality.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Index returns the vector position of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// DocFreq returns how many source documents contained term (0 when unknown).
func (v *Vocabulary) DocFreq(term string) int {
	if i, ok := v.index[term]; ok {
		return v.docFreq[i]
	}
	return 0
}

// Docs returns the number of documents the vocabulary was built from.
func (v *Vocabulary) Docs() int { return v.docs }
