package domain

// Completer is the generative collaborator. It produces free-form answers
// and grammar corrections; the core only sees its request/response/error
// contract.
type Completer interface {
	// Complete sends the system context, prior conversation turns and the
	// user message to the model and returns its reply.
	Complete(systemContext []string, history []Turn, userMessage string) (string, error)
	// FixGrammar returns the query with spelling and grammar corrected,
	// preserving meaning and adding no words.
	FixGrammar(query string) (string, error)
}

// RecordStore is the structured-data collaborator: bank reference facts
// plus the append-only feedback audit table.
type RecordStore interface {
	ListAccountTypes() ([]AccountType, error)
	ListLoanTypes() ([]LoanType, error)
	ListBranches() ([]Branch, error)
	AppendFeedback(rec FeedbackRecord) error
}

// AnswerCache is the learned-answer similarity cache.
type AnswerCache interface {
	// Lookup returns the cached answer whose question is most similar to
	// the query, if the similarity clears the acceptance threshold.
	Lookup(query string) (answer string, ok bool)
	// Admit inserts a new (normalized question, answer) pair. It reports
	// false without touching state when the key is already present.
	Admit(normalizedQuestion, answer string) (bool, error)
	// Len reports the number of learned answers.
	Len() int
}
