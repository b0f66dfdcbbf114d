package deck

import (
	rand "math/rand/v2"
)

// Deck is the 52-card universe minus an excluded set, supporting uniform
// draw-without-replacement. A deck is built fresh for each simulation trial
// and discarded afterwards.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New builds a deck excluding the given cards. The exclusion set must not
// contain duplicates.
func New(excluded []Card, rng *rand.Rand) (*Deck, error) {
	var seen CardSet
	for _, card := range excluded {
		if seen.Contains(card) {
			return nil, &DuplicateCardError{Card: card}
		}
		seen.Add(card)
	}

	d := &Deck{
		cards: make([]Card, 0, 52-len(excluded)),
		rng:   rng,
	}
	for rank := Two; rank <= Ace; rank++ {
		for suit := Spades; suit <= Clubs; suit++ {
			card := NewCard(rank, suit)
			if !seen.Contains(card) {
				d.cards = append(d.cards, card)
			}
		}
	}
	return d, nil
}

// Draw removes and returns n cards chosen uniformly without replacement.
// A partial Fisher-Yates pass makes every size-n subset equally likely
// regardless of the storage order of the remaining pool.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, &InsufficientCardsError{Requested: n, Remaining: len(d.cards)}
	}
	for i := 0; i < n; i++ {
		j := i + d.rng.IntN(len(d.cards)-i)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
