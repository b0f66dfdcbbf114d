// Package deck provides playing card values, the textual card codec and a
// drawable deck built from the 52-card universe minus an excluded set.
package deck

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the display symbol of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the canonical lowercase suit letter used by the codec
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are high (14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single-character rank token ("T" for ten)
func (r Rank) String() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return string(rune('0' + r))
		}
		return "?"
	}
}

// Card is an immutable playing card value. Two cards are equal iff both rank
// and suit match, so Card works directly as a map key and with ==.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the canonical two-character codec form (e.g. "Th", "As")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Pretty returns the display form with a suit symbol (e.g. "T♥")
func (c Card) Pretty() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// index maps a card to a unique bit position in 0..51
func (c Card) index() int {
	return int(c.Rank-Two)*4 + int(c.Suit)
}

// CardSet is a 52-bit set of cards for fast membership checks
type CardSet uint64

// NewCardSet creates a CardSet from a slice of cards
func NewCardSet(cards []Card) CardSet {
	var cs CardSet
	for _, card := range cards {
		cs.Add(card)
	}
	return cs
}

// Add adds a card to the set
func (cs *CardSet) Add(card Card) {
	*cs |= 1 << card.index()
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(card Card) bool {
	return cs&(1<<card.index()) != 0
}
