// Package evaluator maps 5-7 card poker hands to a totally ordered strength
// score. Lower scores are stronger hands.
package evaluator

import (
	"fmt"
	"math/bits"

	"github.com/pokerlab/pokercoach/internal/deck"
)

// Class enumerates the nine rank classes from strongest to weakest.
type Class uint8

const (
	StraightFlush Class = iota + 1
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	OnePair
	HighCard
)

// String returns the human-readable class label
func (c Class) String() string {
	switch c {
	case StraightFlush:
		return "Straight Flush"
	case FourOfAKind:
		return "Four of a Kind"
	case FullHouse:
		return "Full House"
	case Flush:
		return "Flush"
	case Straight:
		return "Straight"
	case ThreeOfAKind:
		return "Three of a Kind"
	case TwoPair:
		return "Two Pair"
	case OnePair:
		return "One Pair"
	case HighCard:
		return "High Card"
	default:
		return "Unknown"
	}
}

// Score is a strict total order over hand strength: any score of a stronger
// class is numerically below every score of a weaker class, and within a
// class the tie-break kickers are compared high to low. Equal scores are
// true ties.
//
// Layout: class in bits 20+, then up to five 4-bit tie-break nibbles packed
// high to low, each holding 15-rank so that higher ranks yield lower scores.
type Score uint32

// Class returns the rank class encoded in the score
func (s Score) Class() Class {
	return Class(s >> 20)
}

// Compare returns 1 if s is the stronger hand, -1 if other is, 0 for a tie
func (s Score) Compare(other Score) int {
	switch {
	case s < other:
		return 1
	case s > other:
		return -1
	default:
		return 0
	}
}

// String returns the class label of the score
func (s Score) String() string {
	return s.Class().String()
}

// Result pairs a score with its rank class for display.
type Result struct {
	Score Score
	Class Class
}

// Evaluate returns the strength of the best 5-card hand contained in 5 to 7
// cards. Class detection works on suit and rank bitmasks, which finds the
// best of all C(7,5) five-card subsets without enumerating them.
func Evaluate(cards []deck.Card) (Result, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Result{}, fmt.Errorf("evaluate: need 5 to 7 cards, got %d", len(cards))
	}

	var suitMasks [4]uint16
	var rankMask uint16
	var counts [15]uint8
	for _, c := range cards {
		bit := uint16(1) << (c.Rank - deck.Two)
		suitMasks[c.Suit] |= bit
		rankMask |= bit
		counts[c.Rank]++
	}

	score := scoreFromMasks(suitMasks, rankMask, counts)
	return Result{Score: score, Class: score.Class()}, nil
}

func scoreFromMasks(suitMasks [4]uint16, rankMask uint16, counts [15]uint8) Score {
	// Flush detection first: at most one suit can hold five of seven cards,
	// and a seven-card hand with a flush cannot also hold quads or a boat.
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if high := straightHigh(suitMask); high > 0 {
			return pack(StraightFlush, high)
		}
		return pack(Flush, topRanks(suitMask, 5)...)
	}

	var quad, trip, secondTrip deck.Rank
	var pairs []deck.Rank
	for r := deck.Ace; r >= deck.Two; r-- {
		switch counts[r] {
		case 4:
			quad = r
		case 3:
			if trip == 0 {
				trip = r
			} else if secondTrip == 0 {
				secondTrip = r
			}
		case 2:
			pairs = append(pairs, r)
		}
	}

	if quad != 0 {
		kicker := highestExcept(rankMask, quad)
		return pack(FourOfAKind, quad, kicker)
	}

	if trip != 0 {
		// A second trip or any pair fills the boat; take the higher.
		pairRank := secondTrip
		if len(pairs) > 0 && pairs[0] > pairRank {
			pairRank = pairs[0]
		}
		if pairRank != 0 {
			return pack(FullHouse, trip, pairRank)
		}
	}

	if high := straightHigh(rankMask); high > 0 {
		return pack(Straight, high)
	}

	if trip != 0 {
		ks := kickers(rankMask, 2, trip)
		return pack(ThreeOfAKind, trip, ks[0], ks[1])
	}

	if len(pairs) >= 2 {
		kicker := highestExcept(rankMask, pairs[0], pairs[1])
		return pack(TwoPair, pairs[0], pairs[1], kicker)
	}

	if len(pairs) == 1 {
		ks := kickers(rankMask, 3, pairs[0])
		return pack(OnePair, pairs[0], ks[0], ks[1], ks[2])
	}

	return pack(HighCard, topRanks(rankMask, 5)...)
}

// pack encodes a class and its tie-break ranks, high to low, into a Score.
func pack(class Class, tiebreaks ...deck.Rank) Score {
	s := uint32(class) << 20
	shift := 16
	for _, r := range tiebreaks {
		s |= uint32(15-r) << shift
		shift -= 4
	}
	return Score(s)
}

// straightHigh returns the high rank of the best straight in the rank mask,
// or 0 when none exists. The wheel (A-2-3-4-5) counts as a five-high
// straight and is only reported when no higher straight is present.
func straightHigh(mask uint16) deck.Rank {
	// Bitwise cascade identifies five consecutive ranks in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		low := bits.Len16(seq) - 1
		return deck.Rank(low) + deck.Two + 4
	}

	const wheel = 0x100F // ace bit plus 2-3-4-5
	if mask&wheel == wheel {
		return deck.Five
	}
	return 0
}

// topRanks returns the n highest ranks present in the mask, descending.
func topRanks(mask uint16, n int) []deck.Rank {
	ranks := make([]deck.Rank, 0, n)
	for mask != 0 && len(ranks) < n {
		top := bits.Len16(mask) - 1
		ranks = append(ranks, deck.Rank(top)+deck.Two)
		mask &^= 1 << top
	}
	return ranks
}

// kickers returns the n highest ranks excluding the given ones, descending.
func kickers(mask uint16, n int, except ...deck.Rank) []deck.Rank {
	for _, r := range except {
		mask &^= 1 << (r - deck.Two)
	}
	return topRanks(mask, n)
}

// highestExcept returns the single highest rank in the mask not listed.
func highestExcept(mask uint16, except ...deck.Rank) deck.Rank {
	return kickers(mask, 1, except...)[0]
}
