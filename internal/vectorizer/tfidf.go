// Package vectorizer implements the TF-IDF weighting model fitted over the
// set of learned questions. The model is refit wholesale whenever the
// corpus changes; vocabulary and IDF weights always reflect the full
// current corpus.
package vectorizer

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// TFIDF is a term-frequency/inverse-document-frequency vectorizer. Input
// text is expected to already be in normalized form (lowercase, tokens
// separated by single spaces), so tokenization is a plain field split.
type TFIDF struct {
	vocabulary map[string]int
	idf        []float64
	dimension  int
	fitted     bool
}

// New creates an unfitted vectorizer.
func New() *TFIDF {
	return &TFIDF{vocabulary: make(map[string]int)}
}

// Fitted reports whether Fit has run over a non-empty corpus.
func (v *TFIDF) Fitted() bool { return v.fitted }

// Dimension returns the size of the fitted vocabulary.
func (v *TFIDF) Dimension() int { return v.dimension }

// Fit builds the vocabulary and IDF values from the corpus. Terms are
// indexed in sorted order so fitting the same corpus always produces the
// same model.
func (v *TFIDF) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF fit")
	}
	// Document frequencies
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range strings.Fields(text) {
			if _, ok := seen[tok]; ok {
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
	if len(terms) == 0 {
		return errors.New("no tokens found in corpus")
	}
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.dimension = len(terms)
	v.fitted = true
	return nil
}

// Transform computes the L2-normalized TF-IDF vector for the given text.
// Tokens outside the vocabulary contribute nothing; text with no known
// tokens yields the zero vector.
func (v *TFIDF) Transform(text string) ([]float64, error) {
	if !v.fitted {
		return nil, errors.New("vectorizer not fitted")
	}
	vec := make([]float64, v.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range strings.Fields(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		tfv := float64(count) / float64(total)
		vec[idx] = tfv * v.idf[idx]
	}
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// Cosine returns the cosine similarity of two vectors produced by
// Transform. Vectors are L2-normalized, so this is a plain dot product.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
