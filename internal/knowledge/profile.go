package knowledge

import (
	"sort"
	"strings"
)

// BankProfile is the fixed set of facts about the bank injected into the
// generative system context.
type BankProfile struct {
	Name         string
	Cards        []string
	Services     []string
	OpeningHours string
	OpenDays     []string
	CloseDays    []string
	App          string
	Website      string
	HowTo        map[string]string
}

// DefaultProfile returns the Trust Bank profile.
func DefaultProfile() BankProfile {
	return BankProfile{
		Name:         "TrustBank",
		Cards:        []string{"debit", "credit"},
		Services:     []string{"transfer", "balance", "statement", "payment", "withdrawal"},
		OpeningHours: "8.00 am to 8.00 pm",
		OpenDays:     []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		CloseDays:    []string{"Poya Days", "Bank Holidays"},
		App:          "TrustBank Banking App",
		Website:      "www.trustbank.lk",
		HowTo: map[string]string{
			"open an account":              "Visit a branch or create one online via the website",
			"documents to open an account": "National ID card/Driving License/Passport",
			"reset the PIN of a card":      "Visit a branch",
			"apply for a loan":             "Visit the closest branch or find the application on our website",
		},
	}
}

// Render formats the profile as the detail block the generative service is
// told to answer from.
func (p BankProfile) Render() string {
	var b strings.Builder
	b.WriteString("Bank name: " + p.Name + "\n")
	b.WriteString("Cards: " + strings.Join(p.Cards, ", ") + "\n")
	b.WriteString("Services: " + strings.Join(p.Services, ", ") + "\n")
	b.WriteString("Opening hours: " + p.OpeningHours + "\n")
	b.WriteString("Open days: " + strings.Join(p.OpenDays, ", ") + "\n")
	b.WriteString("Closed on: " + strings.Join(p.CloseDays, ", ") + "\n")
	b.WriteString("Banking app: " + p.App + "\n")
	b.WriteString("Website: " + p.Website + "\n")
	howtos := make([]string, 0, len(p.HowTo))
	for what := range p.HowTo {
		howtos = append(howtos, what)
	}
	sort.Strings(howtos)
	for _, what := range howtos {
		b.WriteString("How to " + what + ": " + p.HowTo[what] + "\n")
	}
	return b.String()
}
