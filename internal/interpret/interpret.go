// Package interpret converts raw utterances ("add income for $100 in
// category Business for monday") into transaction drafts. Parsing is a
// pure function: anything that is not a well-formed command yields nil,
// never an error, and the caller keeps listening.
package interpret

import (
	"regexp"
	"strings"
	"time"

	"voiceledger/internal/core"
	"voiceledger/internal/dates"
)

// Draft is a parsed candidate transaction prior to validation and
// persistence. Amount is kept as the raw numeric string; conversion and
// rejection of non-numeric values happen at submission time.
type Draft struct {
	Type     core.TransactionType
	Amount   string
	Category string
	Date     core.Date
}

// Transaction converts the draft into a persistable entry with a fresh
// id. A non-numeric or negative amount fails the submission.
func (d *Draft) Transaction() (core.Transaction, error) {
	amount, err := core.ParseAmount(d.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	tx := core.NewTransaction(d.Type, d.Category, amount, d.Date)
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// The grammar is an ordered pipeline of extraction steps over the
// remaining text rather than one monolithic pattern: intent (verb +
// type), amount, then category with an optional trailing date phrase.
// Each step either consumes its prefix or fails the whole parse.
var (
	intentRe = regexp.MustCompile(`^(?:add|create|record)\s+(income|expense)\s+(?:for|of)\s+(.+)$`)

	amountRes = []*regexp.Regexp{
		regexp.MustCompile(`^\$(\d+(?:[.,]\d+)?)\s+(.+)$`),          // $100
		regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s+dollars?\s+(.+)$`), // 100 dollars
		regexp.MustCompile(`^dollars?\s+(\d+(?:[.,]\d+)?)\s+(.+)$`), // dollars 100
		regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s+(.+)$`),            // bare 100
	}

	categoryHeadRe = regexp.MustCompile(`^(?:in|under)\s+(.+)$`)

	alphaToken = regexp.MustCompile(`^[a-z]+$`)
)

// Parse matches a single utterance against the command grammar. It
// returns nil when no command is recognized, the category is missing or
// unknown for the extracted type, or any pipeline step fails. The date
// phrase is optional and degrades to the reference day when absent or
// unparseable.
func Parse(utterance string, now time.Time) *Draft {
	text := strings.ToLower(strings.TrimSpace(utterance))

	typ, rest, ok := matchIntent(text)
	if !ok {
		return nil
	}

	amount, rest, ok := extractAmount(rest)
	if !ok {
		return nil
	}

	category, datePhrase, ok := extractCategoryAndDate(rest)
	if !ok {
		return nil
	}
	if !core.ValidCategory(typ, category) {
		return nil
	}

	date, _ := dates.Normalize(datePhrase, now)

	return &Draft{
		Type:     typ,
		Amount:   amount,
		Category: core.NormalizeCategory(category),
		Date:     date,
	}
}

func matchIntent(text string) (core.TransactionType, string, bool) {
	m := intentRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	switch m[1] {
	case "income":
		return core.Income, m[2], true
	case "expense":
		return core.Expense, m[2], true
	}
	return "", "", false
}

// extractAmount tries the surface forms in order and returns the raw
// numeric string plus the unconsumed tail.
func extractAmount(text string) (string, string, bool) {
	for _, re := range amountRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], m[2], true
		}
	}
	return "", "", false
}

// extractCategoryAndDate consumes "in|under [category] <phrase>" and
// splits the phrase at the first "for" or "on" token into the category
// words and an optional trailing date phrase. Category words must be
// purely alphabetic; the literal placeholder word "category" on its own
// is rejected.
func extractCategoryAndDate(text string) (category, datePhrase string, ok bool) {
	m := categoryHeadRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}

	tokens := strings.Fields(m[1])
	if len(tokens) > 1 && tokens[0] == "category" {
		tokens = tokens[1:]
	}

	var catTokens []string
	for i, tok := range tokens {
		if len(catTokens) > 0 && (tok == "for" || tok == "on") {
			datePhrase = strings.Join(tokens[i+1:], " ")
			break
		}
		if !alphaToken.MatchString(tok) {
			return "", "", false
		}
		catTokens = append(catTokens, tok)
	}

	category = strings.Join(catTokens, " ")
	if category == "" || category == "category" {
		return "", "", false
	}
	return category, datePhrase, true
}
