package vectorizer

import "errors"

// State is the serializable snapshot of a fitted model. Vocabulary is
// stored in index order; IDF[i] is the weight of Vocabulary[i].
type State struct {
	Vocabulary []string  `json:"vocabulary"`
	IDF        []float64 `json:"idf"`
}

// State captures the current model. An unfitted vectorizer snapshots to an
// empty state.
func (v *TFIDF) State() State {
	if !v.fitted {
		return State{}
	}
	vocab := make([]string, v.dimension)
	for term, idx := range v.vocabulary {
		vocab[idx] = term
	}
	idf := make([]float64, len(v.idf))
	copy(idf, v.idf)
	return State{Vocabulary: vocab, IDF: idf}
}

// FromState restores a vectorizer from a snapshot. An empty state yields
// an unfitted vectorizer.
func FromState(st State) (*TFIDF, error) {
	if len(st.Vocabulary) == 0 {
		return New(), nil
	}
	if len(st.Vocabulary) != len(st.IDF) {
		return nil, errors.New("vectorizer state: vocabulary and idf length mismatch")
	}
	v := &TFIDF{
		vocabulary: make(map[string]int, len(st.Vocabulary)),
		idf:        make([]float64, len(st.IDF)),
		dimension:  len(st.Vocabulary),
		fitted:     true,
	}
	for i, term := range st.Vocabulary {
		v.vocabulary[term] = i
	}
	copy(v.idf, st.IDF)
	return v, nil
}
