package simindex

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"bankassist/internal/vectorizer"
)

// The model state is two artifacts written as a pair. A crash between the
// two writes leaves at most one of them behind; the loader treats a
// missing or unreadable half as "no persisted state".
const (
	answersFile    = "answers.json"
	vectorizerFile = "vectorizer.json"
)

func loadState(dir string, log zerolog.Logger) (map[string]string, *vectorizer.TFIDF, bool) {
	answers := make(map[string]string)
	data, err := os.ReadFile(filepath.Join(dir, answersFile))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("answers artifact unreadable, starting empty")
		}
		return make(map[string]string), vectorizer.New(), true
	}
	if err := json.Unmarshal(data, &answers); err != nil {
		log.Warn().Err(err).Msg("answers artifact corrupt, starting empty")
		return make(map[string]string), vectorizer.New(), true
	}

	data, err = os.ReadFile(filepath.Join(dir, vectorizerFile))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("vectorizer artifact unreadable, starting empty")
		}
		return make(map[string]string), vectorizer.New(), true
	}
	var st vectorizer.State
	if err := json.Unmarshal(data, &st); err != nil {
		log.Warn().Err(err).Msg("vectorizer artifact corrupt, starting empty")
		return make(map[string]string), vectorizer.New(), true
	}
	vec, err := vectorizer.FromState(st)
	if err != nil {
		log.Warn().Err(err).Msg("vectorizer state invalid, starting empty")
		return make(map[string]string), vectorizer.New(), true
	}
	// Learned answers without a fitted space cannot be matched against.
	if len(answers) > 0 && !vec.Fitted() {
		log.Warn().Msg("answers present but vectorizer unfitted, starting empty")
		return make(map[string]string), vectorizer.New(), true
	}
	return answers, vec, false
}

func saveState(dir string, answers map[string]string, vec *vectorizer.TFIDF) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, answersFile), answers); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, vectorizerFile), vec.State())
}

// writeJSON writes to a temp file in the same directory and renames it into
// place, so each artifact is either the old or the new version, never a
// partial write.
func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
