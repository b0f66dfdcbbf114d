package deck

import (
	"fmt"
	"strings"
)

// ParseCard parses a single card token into a Card.
// Tokens are a rank character (2-9, T or 10, J, Q, K, A) directly followed
// by a suit letter (s, h, d, c), case-insensitive. The parsed card is
// re-encoded and checked against the normalized token so a codec mismatch
// can never slip through silently.
func ParseCard(token string) (Card, error) {
	t := strings.ToUpper(strings.TrimSpace(token))

	var rankToken, suitToken string
	switch len(t) {
	case 2:
		rankToken, suitToken = t[:1], t[1:]
	case 3:
		// "10s" form
		rankToken, suitToken = t[:2], t[2:]
	default:
		return Card{}, &ParseError{Token: token, Reason: "must be 2 or 3 characters like 'Ah' or '10s'"}
	}

	rank, ok := parseRank(rankToken)
	if !ok {
		return Card{}, &ParseError{Token: token, Reason: fmt.Sprintf("unknown rank %q", rankToken)}
	}
	suit, ok := parseSuit(suitToken)
	if !ok {
		return Card{}, &ParseError{Token: token, Reason: fmt.Sprintf("unknown suit %q", suitToken)}
	}

	card := NewCard(rank, suit)
	if !strings.EqualFold(card.String(), normalizeToken(rankToken, suitToken)) {
		return Card{}, &ParseError{Token: token, Reason: "round-trip encode mismatch"}
	}
	return card, nil
}

// ParseCards parses a whitespace-separated list of card tokens and rejects
// duplicates across the whole list.
func ParseCards(text string) ([]Card, error) {
	tokens := strings.Fields(text)
	cards := make([]Card, 0, len(tokens))
	var seen CardSet
	for _, token := range tokens {
		card, err := ParseCard(token)
		if err != nil {
			return nil, err
		}
		if seen.Contains(card) {
			return nil, &DuplicateCardError{Card: card}
		}
		seen.Add(card)
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(text string) []Card {
	cards, err := ParseCards(text)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", text, err))
	}
	return cards
}

// FormatCards renders cards as space-separated canonical tokens
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

func normalizeToken(rankToken, suitToken string) string {
	if rankToken == "10" {
		rankToken = "T"
	}
	return rankToken + strings.ToLower(suitToken)
}

func parseRank(token string) (Rank, bool) {
	switch token {
	case "A":
		return Ace, true
	case "K":
		return King, true
	case "Q":
		return Queen, true
	case "J":
		return Jack, true
	case "T", "10":
		return Ten, true
	case "9", "8", "7", "6", "5", "4", "3", "2":
		return Rank(token[0] - '0'), true
	default:
		return 0, false
	}
}

func parseSuit(token string) (Suit, bool) {
	switch token {
	case "S":
		return Spades, true
	case "H":
		return Hearts, true
	case "D":
		return Diamonds, true
	case "C":
		return Clubs, true
	default:
		return 0, false
	}
}
