package deck

import "fmt"

// ParseError reports a malformed card token.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid card %q: %s", e.Token, e.Reason)
}

// DuplicateCardError reports the same card appearing twice across a parsed
// list or an exclusion set.
type DuplicateCardError struct {
	Card Card
}

func (e *DuplicateCardError) Error() string {
	return fmt.Sprintf("duplicate card %s", e.Card)
}

// InsufficientCardsError reports a draw that exceeds the cards remaining.
type InsufficientCardsError struct {
	Requested int
	Remaining int
}

func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("cannot draw %d cards, only %d remaining", e.Requested, e.Remaining)
}
