package assistant

// Fixed user-facing messages for collaborator failures. Each maps to one
// failure class; none of them expose the underlying error.
const (
	msgConnection = "Sorry, I'm having trouble connecting to the response engine. Please try again later."
	msgRateLimit  = "Sorry, I'm receiving too many requests at the moment. Please try again in a few seconds."
	msgAuth       = "Authentication with the AI service failed. Please contact support."
	msgService    = "Sorry, something went wrong while processing your request."
	msgUnexpected = "An unexpected error occurred. Please try again later."

	msgQueryFailed = "Something went wrong while processing your banking question. Please try again later."

	msgNoAccounts = "Sorry, I couldn't find any account information at the moment."
	msgNoLoans    = "Sorry, I couldn't find any loan information at the moment."
	msgNoBranches = "Sorry, I couldn't find any branch information at the moment."
)
