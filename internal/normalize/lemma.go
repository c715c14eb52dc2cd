package normalize

import "strings"

// irregular maps plural forms that the suffix rules cannot reach.
var irregular = map[string]string{
	"men":      "man",
	"women":    "woman",
	"children": "child",
	"feet":     "foot",
	"teeth":    "tooth",
	"mice":     "mouse",
	"monies":   "money",
	"indices":  "index",
	"criteria": "criterion",
}

// Lemma reduces a token to its dictionary base form. The rules only touch
// plural-style suffixes, so the output is itself a fixed point of Lemma.
func Lemma(tok string) string {
	if base, ok := irregular[tok]; ok {
		return base
	}
	if len(tok) <= 3 {
		return tok
	}
	switch {
	case strings.HasSuffix(tok, "ies") && len(tok) > 4:
		return tok[:len(tok)-3] + "y"
	case strings.HasSuffix(tok, "sses"),
		strings.HasSuffix(tok, "shes"),
		strings.HasSuffix(tok, "ches"),
		strings.HasSuffix(tok, "xes"),
		strings.HasSuffix(tok, "zes"):
		return tok[:len(tok)-2]
	case strings.HasSuffix(tok, "ss"):
		return tok
	case strings.HasSuffix(tok, "s"):
		return tok[:len(tok)-1]
	}
	return tok
}
