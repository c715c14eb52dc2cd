// Package assistant wires the query router and the feedback learning loop
// around the collaborators: the learned-answer cache, the record store and
// the generative service.
package assistant

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"bankassist/internal/domain"
	"bankassist/internal/genai"
	"bankassist/internal/knowledge"
	"bankassist/internal/normalize"
)

// minPositiveRating is the admission gate: only feedback with a strictly
// greater rating teaches the cache. Ratings run 1-5.
const minPositiveRating = 3

// BranchTopic selects which records enrich branch-topic queries.
type BranchTopic string

const (
	// BranchTopicAccounts routes branch keywords to the accounts handler.
	BranchTopicAccounts BranchTopic = "accounts"
	// BranchTopicBranches enriches branch-topic queries with branch records.
	BranchTopicBranches BranchTopic = "branches"
)

var (
	accountKeywords = []string{"account", "accounts", "savings", "checking", "deposit", "fixed deposits", "fix deposits", "fixed"}
	loanKeywords    = []string{"loan", "borrow", "mortgage", "finance"}
	branchKeywords  = []string{"branch", "branches", "branch code", "branch address", "address"}
)

// Assistant routes queries and learns from feedback. Requests are handled
// one at a time; the caller serializes access.
type Assistant struct {
	completer   domain.Completer
	store       domain.RecordStore
	cache       domain.AnswerCache
	patterns    *knowledge.StaticPatterns
	profile     knowledge.BankProfile
	history     *History
	branchTopic BranchTopic
	log         zerolog.Logger
}

// New assembles an Assistant from its collaborators.
func New(completer domain.Completer, store domain.RecordStore, cache domain.AnswerCache,
	patterns *knowledge.StaticPatterns, profile knowledge.BankProfile,
	branchTopic BranchTopic, log zerolog.Logger) *Assistant {
	if branchTopic == "" {
		branchTopic = BranchTopicAccounts
	}
	return &Assistant{
		completer:   completer,
		store:       store,
		cache:       cache,
		patterns:    patterns,
		profile:     profile,
		history:     NewHistory(),
		branchTopic: branchTopic,
		log:         log,
	}
}

// History exposes the conversation window for the UI transcript.
func (a *Assistant) History() *History { return a.history }

// Respond produces the answer for a raw user query. It never fails: every
// collaborator error is converted into a fixed user-facing message here,
// and a panic anywhere in the routing path is contained the same way.
func (a *Assistant) Respond(rawQuery string) (response string) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Str("query", rawQuery).Msg("routing panicked")
			response = msgQueryFailed
		}
	}()

	corrected, err := a.completer.FixGrammar(rawQuery)
	if err != nil {
		return a.failureMessage(err)
	}
	a.log.Debug().Str("raw", rawQuery).Str("corrected", corrected).Msg("grammar pass")

	normalized := normalize.Normalize(corrected)
	if resp, ok := a.patterns.Match(normalized); ok {
		a.log.Debug().Str("pattern", normalized).Msg("static pattern hit")
		return resp
	}
	return a.route(corrected)
}

// route evaluates the response paths in strict order: learned cache,
// keyword-classified enrichment, then the plain generative fallback.
func (a *Assistant) route(query string) string {
	if answer, ok := a.cache.Lookup(query); ok {
		a.history.Append(domain.Turn{Role: domain.RoleUser, Content: query})
		a.history.Append(domain.Turn{Role: domain.RoleAssistant, Content: answer})
		return answer
	}

	lower := strings.ToLower(query)
	switch {
	case containsAny(lower, accountKeywords):
		return a.accountEnriched(query)
	case containsAny(lower, loanKeywords):
		return a.loanEnriched(query)
	case containsAny(lower, branchKeywords):
		if a.branchTopic == BranchTopicBranches {
			return a.branchEnriched(query)
		}
		return a.accountEnriched(query)
	}
	return a.complete(query)
}

func (a *Assistant) accountEnriched(query string) string {
	accounts, err := a.store.ListAccountTypes()
	if err != nil {
		a.log.Error().Err(err).Msg("account lookup failed")
		return msgService
	}
	if len(accounts) == 0 {
		return msgNoAccounts
	}
	lines := make([]string, len(accounts))
	for i, acc := range accounts {
		lines[i] = fmt.Sprintf("- %s: %s (Min balance: $%g, Interest rate: %g%%)",
			acc.Type, acc.Description, acc.MinBalance, acc.InterestRate)
	}
	return a.complete(query + "\n\nHere is the list of available bank accounts:\n" + strings.Join(lines, "\n"))
}

func (a *Assistant) loanEnriched(query string) string {
	loans, err := a.store.ListLoanTypes()
	if err != nil {
		a.log.Error().Err(err).Msg("loan lookup failed")
		return msgService
	}
	if len(loans) == 0 {
		return msgNoLoans
	}
	lines := make([]string, len(loans))
	for i, l := range loans {
		lines[i] = fmt.Sprintf("- %s: %s (Interest rate: %g%%, Max amount: $%.0f, Term: %d-%d years)",
			l.Type, l.Description, l.InterestRate, l.MaxAmount, l.MinTermYears, l.MaxTermYears)
	}
	return a.complete(query + "\n\nHere is the list of our available loan types:\n" + strings.Join(lines, "\n"))
}

func (a *Assistant) branchEnriched(query string) string {
	branches, err := a.store.ListBranches()
	if err != nil {
		a.log.Error().Err(err).Msg("branch lookup failed")
		return msgService
	}
	if len(branches) == 0 {
		return msgNoBranches
	}
	lines := make([]string, len(branches))
	for i, b := range branches {
		lines[i] = fmt.Sprintf("- %s (Code: %d) located at %s", b.Name, b.Code, b.Address)
	}
	return a.complete(query + "\n\nHere is the list of our bank branches:\n" + strings.Join(lines, "\n"))
}

// complete delegates to the generative service and records the exchange in
// the conversation window on success.
func (a *Assistant) complete(userMessage string) string {
	systemContext := []string{
		"You are a banking assistant and you only respond using the detail provided. " +
			"If the query is unrelated to the bank, say 'Sorry, I can only answer bank related questions'.",
		"Here are some of the details about the bank:\n" + a.profile.Render(),
	}
	resp, err := a.completer.Complete(systemContext, a.history.Turns(), userMessage)
	if err != nil {
		return a.failureMessage(err)
	}
	a.history.Append(domain.Turn{Role: domain.RoleUser, Content: userMessage})
	a.history.Append(domain.Turn{Role: domain.RoleAssistant, Content: resp})
	return resp
}

// SubmitFeedback records one audit row for the triple and, when the rating
// clears the admission gate and the question is new, teaches the cache.
// The audit write is unconditional and its failure aborts learning.
func (a *Assistant) SubmitFeedback(query, response string, rating int) error {
	rec := domain.FeedbackRecord{
		Query:     query,
		Response:  response,
		Rating:    rating,
		Timestamp: time.Now(),
	}
	if err := a.store.AppendFeedback(rec); err != nil {
		return err
	}
	if rating <= minPositiveRating {
		return nil
	}
	admitted, err := a.cache.Admit(normalize.Normalize(query), response)
	if err != nil {
		return err
	}
	if admitted {
		a.log.Info().Int("rating", rating).Msg("feedback admitted to cache")
	}
	return nil
}

// failureMessage maps a generative-collaborator error to its fixed
// user-facing message, logging at a severity matching the blast radius.
func (a *Assistant) failureMessage(err error) string {
	switch {
	case errors.Is(err, genai.ErrConnection):
		a.log.Error().Err(err).Msg("response engine unreachable")
		return msgConnection
	case errors.Is(err, genai.ErrRateLimit):
		a.log.Warn().Err(err).Msg("response engine rate limited")
		return msgRateLimit
	case errors.Is(err, genai.ErrAuth):
		a.log.WithLevel(zerolog.FatalLevel).Err(err).Msg("response engine authentication failed")
		return msgAuth
	case errors.Is(err, genai.ErrService):
		a.log.Error().Err(err).Msg("response engine error")
		return msgService
	}
	a.log.Error().Err(err).Msg("unexpected response engine failure")
	return msgUnexpected
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
