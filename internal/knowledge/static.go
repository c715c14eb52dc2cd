// Package knowledge holds the fixed conversational knowledge: the static
// pattern table answered without the generative service, and the bank
// profile rendered into its system context.
package knowledge

import (
	"math/rand"

	"bankassist/internal/normalize"
)

// StaticPatterns maps normalized query patterns to their fixed response
// lists. A response is chosen uniformly at random on each match.
type StaticPatterns struct {
	patterns map[string][]string
	rng      *rand.Rand
}

// NewStaticPatterns builds the default pattern table. The random source is
// injected so tests can pin the selection. Pattern keys are stored in
// normalized form, so matching is an exact map probe on the normalized
// query.
func NewStaticPatterns(rng *rand.Rand) *StaticPatterns {
	patterns := make(map[string][]string)
	for key, responses := range defaultPatterns() {
		patterns[normalize.Normalize(key)] = responses
	}
	return &StaticPatterns{patterns: patterns, rng: rng}
}

// Match returns a response for the normalized query when it exactly equals
// a pattern key.
func (s *StaticPatterns) Match(normalizedQuery string) (string, bool) {
	responses, ok := s.patterns[normalizedQuery]
	if !ok || len(responses) == 0 {
		return "", false
	}
	return responses[s.rng.Intn(len(responses))], true
}

// Responses returns the fixed response list for a pattern key. Used by
// tests and diagnostics to verify selection stays within the list.
func (s *StaticPatterns) Responses(pattern string) []string {
	return s.patterns[normalize.Normalize(pattern)]
}

func defaultPatterns() map[string][]string {
	return map[string][]string{
		"hi": {
			"Hello! How can I assist you with your banking needs today?",
			"Hi there! What banking service can I help you with?",
			"Hey! Welcome to Trust Bank. What can I do for you?",
		},
		"hello": {
			"Hello! Welcome to our banking service. How may I help you?",
			"Hi! What banking query do you have today?",
			"Greetings! I'm your banking assistant. How can I be of service?",
		},
		"hey": {
			"Hey there! What brings you to Trust Bank today?",
			"Hey! Ready to handle your banking needs. What's on your mind?",
		},
		"good morning": {
			"Good morning! How can I assist you with your banking today?",
			"Morning! What banking service can I help you with?",
			"Top of the morning to you! What banking matters shall we discuss?",
		},
		"good afternoon": {
			"Good afternoon! How may I assist you with your banking needs?",
			"Afternoon! What financial service are you looking for today?",
		},
		"good evening": {
			"Good evening! How can I help with your banking this evening?",
			"Evening! What banking query brings you here tonight?",
		},
		"thanks": {
			"Anytime! What else can I do for you today?",
			"No problem at all! I'm here if you need more assistance.",
			"You're welcome! Is there anything else I can help you with?",
			"My pleasure! Let me know if you need anything else.",
			"Happy to help! Don't hesitate to ask if you have more questions.",
		},
		"goodbye": {
			"Goodbye! Have a great day!",
			"Farewell! Come back if you have more banking questions.",
			"Take care! Remember we're here 24/7 for your banking needs.",
		},
		"bye": {
			"Bye now! Don't hesitate to return if you need anything.",
			"See you later! Happy banking!",
		},
	}
}
