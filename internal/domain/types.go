package domain

import "time"

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is a single role-tagged message in the conversation window.
type Turn struct {
	Role    Role
	Content string
}

// AccountType describes one deposit product offered by the bank.
type AccountType struct {
	Type         string
	Description  string
	MinBalance   float64
	InterestRate float64
}

// LoanType describes one lending product offered by the bank.
type LoanType struct {
	Type         string
	Description  string
	InterestRate float64
	MaxAmount    float64
	MinTermYears int
	MaxTermYears int
}

// Branch is a physical bank branch.
type Branch struct {
	Name    string
	Code    int
	Address string
}

// FeedbackRecord is an immutable audit entry for one feedback submission.
// Every submission produces exactly one record, admitted or not.
type FeedbackRecord struct {
	Query     string
	Response  string
	Rating    int
	Timestamp time.Time
}
