// Package simindex holds the learned-answer cache: a mapping from
// normalized questions to answer text plus the TF-IDF space the questions
// are matched in. Admissions refit the space over the full key set and
// persist both artifacts; lookups are read-only.
package simindex

import (
	"sort"

	"github.com/rs/zerolog"

	"bankassist/internal/normalize"
	"bankassist/internal/vectorizer"
)

// SimilarityThreshold is the minimum cosine similarity a learned question
// must exceed against the query to be served as a cache hit.
const SimilarityThreshold = 0.9

// Index is the learned-answer similarity cache. It is not safe for
// concurrent use; requests are processed one at a time.
type Index struct {
	answers  map[string]string
	keys     []string // sorted copy of the map keys, scan order for lookups
	vec      *vectorizer.TFIDF
	stateDir string
	log      zerolog.Logger
}

// Open loads the persisted model state from stateDir, or initializes empty
// state and persists it when no usable prior state exists. A missing or
// unreadable half of the artifact pair counts as no prior state.
func Open(stateDir string, log zerolog.Logger) (*Index, error) {
	answers, vec, fresh := loadState(stateDir, log)
	ix := &Index{
		answers:  answers,
		keys:     sortedKeys(answers),
		vec:      vec,
		stateDir: stateDir,
		log:      log,
	}
	if fresh {
		if err := saveState(stateDir, ix.answers, ix.vec); err != nil {
			return nil, err
		}
	}
	log.Info().Int("learned", len(answers)).Str("dir", stateDir).Msg("model state loaded")
	return ix, nil
}

// Len reports the number of learned answers.
func (ix *Index) Len() int { return len(ix.answers) }

// Lookup normalizes the query, projects it into the fitted space and
// returns the answer of the most similar learned question when the
// similarity strictly exceeds the threshold. With nothing learned yet it
// returns immediately, leaving the unfitted space untouched.
func (ix *Index) Lookup(query string) (string, bool) {
	if len(ix.answers) == 0 {
		return "", false
	}
	qvec, err := ix.vec.Transform(normalize.Normalize(query))
	if err != nil {
		ix.log.Error().Err(err).Msg("lookup projection failed")
		return "", false
	}
	best := -1.0
	bestKey := ""
	for _, key := range ix.keys {
		kvec, err := ix.vec.Transform(key)
		if err != nil {
			ix.log.Error().Err(err).Str("key", key).Msg("key projection failed")
			continue
		}
		// Strict > keeps the first of equal maxima; keys are sorted, so
		// ties break the same way every time.
		if sim := vectorizer.Cosine(qvec, kvec); sim > best {
			best = sim
			bestKey = key
		}
	}
	if best > SimilarityThreshold {
		ix.log.Debug().Str("match", bestKey).Float64("similarity", best).Msg("cache hit")
		return ix.answers[bestKey], true
	}
	return "", false
}

// Admit inserts a new learned answer under its normalized question, refits
// the space over the full key set and persists both artifacts. It reports
// false without touching anything when the key is already present; the
// first admitted answer for a question is never overwritten.
func (ix *Index) Admit(normalizedQuestion, answer string) (bool, error) {
	if _, exists := ix.answers[normalizedQuestion]; exists {
		return false, nil
	}
	ix.answers[normalizedQuestion] = answer
	ix.keys = sortedKeys(ix.answers)
	if err := ix.vec.Fit(ix.keys); err != nil {
		delete(ix.answers, normalizedQuestion)
		ix.keys = sortedKeys(ix.answers)
		return false, err
	}
	if err := saveState(ix.stateDir, ix.answers, ix.vec); err != nil {
		return false, err
	}
	ix.log.Info().Str("question", normalizedQuestion).Int("learned", len(ix.answers)).Msg("answer admitted")
	return true, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
