package simindex

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankassist/internal/normalize"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return ix
}

func TestLookupEmptyIndex(t *testing.T) {
	ix := openTestIndex(t)
	for _, q := range []string{"", "anything at all", "what is the interest rate"} {
		_, ok := ix.Lookup(q)
		assert.False(t, ok, "query %q", q)
	}
}

func TestOpenPersistsEmptyState(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	for _, name := range []string{answersFile, vectorizerFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "artifact %s", name)
	}
}

func TestAdmitThenLookupSameRawText(t *testing.T) {
	ix := openTestIndex(t)
	raw := "What is the interest rate for savings?"
	key := normalize.Normalize(raw)

	admitted, err := ix.Admit(key, "The savings rate is 1.5%.")
	require.NoError(t, err)
	assert.True(t, admitted)

	got, ok := ix.Lookup(raw)
	require.True(t, ok)
	assert.Equal(t, "The savings rate is 1.5%.", got)
}

func TestAdmitIdempotentOnKeys(t *testing.T) {
	ix := openTestIndex(t)
	key := normalize.Normalize("how do I reset my card PIN")

	admitted, err := ix.Admit(key, "Visit a branch.")
	require.NoError(t, err)
	require.True(t, admitted)

	admitted, err = ix.Admit(key, "A different answer.")
	require.NoError(t, err)
	assert.False(t, admitted)
	assert.Equal(t, 1, ix.Len())

	got, ok := ix.Lookup("how do I reset my card PIN")
	require.True(t, ok)
	assert.Equal(t, "Visit a branch.", got, "first admission must win")
}

func TestLookupMissBelowThreshold(t *testing.T) {
	ix := openTestIndex(t)
	_, err := ix.Admit(normalize.Normalize("what are the loan repayment terms"), "One to thirty years.")
	require.NoError(t, err)

	_, ok := ix.Lookup("how do I open a joint checking account")
	assert.False(t, ok)
}

func TestLookupDeterministicTieBreak(t *testing.T) {
	ix := openTestIndex(t)
	// Two keys over disjoint vocabularies both score 0 against a query
	// with no known tokens; neither clears the threshold.
	_, err := ix.Admit("alpha beta", "first")
	require.NoError(t, err)
	_, err = ix.Admit("gamma delta", "second")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, ok := ix.Lookup("unrelated words entirely")
		assert.False(t, ok)
	}
}

func TestReloadAfterAdmit(t *testing.T) {
	dir := t.TempDir()
	ix, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	key := normalize.Normalize("what documents do I need to open an account")
	_, err = ix.Admit(key, "National ID, driving license or passport.")
	require.NoError(t, err)

	reopened, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Len())
	got, ok := reopened.Lookup("what documents do I need to open an account")
	require.True(t, ok)
	assert.Equal(t, "National ID, driving license or passport.", got)
}

func TestMissingHalfResetsState(t *testing.T) {
	for _, missing := range []string{answersFile, vectorizerFile} {
		t.Run("missing "+missing, func(t *testing.T) {
			dir := t.TempDir()
			ix, err := Open(dir, zerolog.Nop())
			require.NoError(t, err)
			_, err = ix.Admit("saved question", "saved answer")
			require.NoError(t, err)

			require.NoError(t, os.Remove(filepath.Join(dir, missing)))

			reopened, err := Open(dir, zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, 0, reopened.Len())
			// Both artifacts must be rewritten for the next startup.
			for _, name := range []string{answersFile, vectorizerFile} {
				_, err := os.Stat(filepath.Join(dir, name))
				assert.NoError(t, err, "artifact %s", name)
			}
		})
	}
}

func TestCorruptArtifactResetsState(t *testing.T) {
	dir := t.TempDir()
	ix, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	_, err = ix.Admit("saved question", "saved answer")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, answersFile), []byte("{not json"), 0o644))

	reopened, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Len())
}

func TestPersistedAnswersAreValidJSON(t *testing.T) {
	dir := t.TempDir()
	ix, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	_, err = ix.Admit("question one", "answer one")
	require.NoError(t, err)
	_, err = ix.Admit("question two", "answer two")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, answersFile))
	require.NoError(t, err)
	var answers map[string]string
	require.NoError(t, json.Unmarshal(data, &answers))
	assert.Len(t, answers, 2)
}
