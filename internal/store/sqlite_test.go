package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankassist/internal/domain"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "bank.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeededReferenceData(t *testing.T) {
	s := openTestStore(t)

	accounts, err := s.ListAccountTypes()
	require.NoError(t, err)
	require.Len(t, accounts, 4)
	assert.Equal(t, "Savings", accounts[0].Type)
	assert.Equal(t, 500.0, accounts[0].MinBalance)
	assert.Equal(t, 1.5, accounts[0].InterestRate)

	loans, err := s.ListLoanTypes()
	require.NoError(t, err)
	require.Len(t, loans, 4)
	assert.Equal(t, "Home", loans[1].Type)
	assert.Equal(t, 30, loans[1].MaxTermYears)

	branches, err := s.ListBranches()
	require.NoError(t, err)
	require.Len(t, branches, 10)
	assert.Equal(t, 101, branches[0].Code)
}

func TestSeedRunsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.db")
	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	accounts, err := s.ListAccountTypes()
	require.NoError(t, err)
	assert.Len(t, accounts, 4, "reopen must not reseed")
}

func TestAppendFeedbackAddsExactlyOneRow(t *testing.T) {
	s := openTestStore(t)

	before, err := s.ListFeedback()
	require.NoError(t, err)
	require.Empty(t, before)

	rec := domain.FeedbackRecord{
		Query:     "what is the savings rate",
		Response:  "1.5% per annum",
		Rating:    5,
		Timestamp: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.AppendFeedback(rec))

	after, err := s.ListFeedback()
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, rec.Query, after[0].Query)
	assert.Equal(t, rec.Response, after[0].Response)
	assert.Equal(t, rec.Rating, after[0].Rating)
	assert.True(t, rec.Timestamp.Equal(after[0].Timestamp))
}

func TestFeedbackIsAppendOnlyInOrder(t *testing.T) {
	s := openTestStore(t)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.AppendFeedback(domain.FeedbackRecord{
			Query:     "q",
			Response:  "r",
			Rating:    i,
			Timestamp: time.Now(),
		}))
	}
	recs, err := s.ListFeedback()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for i, rec := range recs {
		assert.Equal(t, i+1, rec.Rating)
	}
}
