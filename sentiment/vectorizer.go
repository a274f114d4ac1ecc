package sentiment

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Vector is a sparse feature vector. Indices are strictly increasing.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// Vectorizer maps normalized text onto a fitted vocabulary, following
// scikit-learn's CountVectorizer/TfidfVectorizer transform.
type Vectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	tfidf       bool
	l2          bool
	sublinearTF bool
	binary      bool
	minN, maxN  int
	minTokenLen int
}

// NewVectorizer validates a vectorizer artifact and builds the transform.
func NewVectorizer(a VectorizerArtifact) (*Vectorizer, error) {
	if len(a.Vocabulary) == 0 {
		return nil, fmt.Errorf("%w: vectorizer vocabulary is empty", ErrArtifact)
	}
	dim := len(a.Vocabulary)
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= dim {
			return nil, fmt.Errorf("%w: vocabulary index %d for %q outside [0,%d)", ErrArtifact, idx, term, dim)
		}
	}

	v := &Vectorizer{
		vocabulary:  a.Vocabulary,
		sublinearTF: a.SublinearTF,
		binary:      a.Binary,
		minN:        1,
		maxN:        1,
		minTokenLen: 2,
	}

	switch a.Kind {
	case "count":
	case "tfidf":
		if len(a.IDF) != dim {
			return nil, fmt.Errorf("%w: idf has %d entries, vocabulary has %d", ErrArtifact, len(a.IDF), dim)
		}
		v.tfidf = true
		v.idf = a.IDF
	default:
		return nil, fmt.Errorf("%w: unknown vectorizer kind %q", ErrArtifact, a.Kind)
	}

	switch a.Norm {
	case "", "none":
	case "l2":
		v.l2 = true
	default:
		return nil, fmt.Errorf("%w: unsupported norm %q", ErrArtifact, a.Norm)
	}

	if len(a.NgramRange) == 2 {
		v.minN, v.maxN = a.NgramRange[0], a.NgramRange[1]
		if v.minN < 1 || v.maxN < v.minN {
			return nil, fmt.Errorf("%w: invalid ngram_range %v", ErrArtifact, a.NgramRange)
		}
	}
	if a.MinTokenLength != nil {
		v.minTokenLen = *a.MinTokenLength
	}
	return v, nil
}

// Dim is the fixed feature dimension.
func (v *Vectorizer) Dim() int {
	return len(v.vocabulary)
}

// Transform vectorizes one document. Out-of-vocabulary terms are ignored and
// an empty document yields an all-zero vector.
func (v *Vectorizer) Transform(text string) Vector {
	var tokens []string
	for _, tok := range strings.Fields(text) {
		if len(tok) >= v.minTokenLen {
			tokens = append(tokens, tok)
		}
	}

	counts := make(map[int]float64)
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := strings.Join(tokens[i:i+n], " ")
			if idx, ok := v.vocabulary[term]; ok {
				counts[idx]++
			}
		}
	}

	vec := Vector{Dim: v.Dim(), Indices: make([]int, 0, len(counts))}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	vec.Values = make([]float64, len(vec.Indices))
	var sumSquares float64
	for i, idx := range vec.Indices {
		tf := counts[idx]
		switch {
		case v.binary:
			tf = 1
		case v.sublinearTF:
			tf = 1 + math.Log(tf)
		}
		if v.tfidf {
			tf *= v.idf[idx]
		}
		vec.Values[i] = tf
		sumSquares += tf * tf
	}

	if v.l2 && sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}
