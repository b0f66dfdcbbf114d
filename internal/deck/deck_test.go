package deck

import (
	"errors"
	"testing"

	"github.com/pokerlab/pokercoach/internal/randutil"
)

func TestNewDeckFull(t *testing.T) {
	d, err := New(nil, randutil.New(1))
	if err != nil {
		t.Fatal(err)
	}
	if d.Remaining() != 52 {
		t.Errorf("full deck has %d cards, want 52", d.Remaining())
	}
}

func TestNewDeckExcludes(t *testing.T) {
	excluded := MustParseCards("As Kh 7d")
	d, err := New(excluded, randutil.New(1))
	if err != nil {
		t.Fatal(err)
	}
	if d.Remaining() != 49 {
		t.Fatalf("deck has %d cards, want 49", d.Remaining())
	}

	drawn, err := d.Draw(49)
	if err != nil {
		t.Fatal(err)
	}
	set := NewCardSet(drawn)
	for _, card := range excluded {
		if set.Contains(card) {
			t.Errorf("excluded card %s was drawn", card)
		}
	}
}

func TestNewDeckDuplicateExclusion(t *testing.T) {
	cards := []Card{NewCard(Ace, Spades), NewCard(Ace, Spades)}
	_, err := New(cards, randutil.New(1))
	var dup *DuplicateCardError
	if !errors.As(err, &dup) {
		t.Fatalf("got %v, want *DuplicateCardError", err)
	}
}

func TestDrawWithoutReplacement(t *testing.T) {
	d, err := New(nil, randutil.New(42))
	if err != nil {
		t.Fatal(err)
	}

	var seen CardSet
	total := 0
	for _, n := range []int{2, 3, 1, 5, 41} {
		drawn, err := d.Draw(n)
		if err != nil {
			t.Fatal(err)
		}
		for _, card := range drawn {
			if seen.Contains(card) {
				t.Fatalf("card %s drawn twice", card)
			}
			seen.Add(card)
		}
		total += n
	}
	if total != 52 || d.Remaining() != 0 {
		t.Errorf("drew %d cards, %d remaining", total, d.Remaining())
	}
}

func TestDrawInsufficient(t *testing.T) {
	d, err := New(nil, randutil.New(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Draw(53); err == nil {
		t.Fatal("expected error drawing 53 from 52")
	} else {
		var insufficient *InsufficientCardsError
		if !errors.As(err, &insufficient) {
			t.Fatalf("got %T, want *InsufficientCardsError", err)
		}
		if insufficient.Requested != 53 || insufficient.Remaining != 52 {
			t.Errorf("error = %v, want requested 53 remaining 52", insufficient)
		}
	}
}

func TestDrawDeterministicWithSeed(t *testing.T) {
	draw := func() []Card {
		d, err := New(nil, randutil.New(7))
		if err != nil {
			t.Fatal(err)
		}
		cards, err := d.Draw(10)
		if err != nil {
			t.Fatal(err)
		}
		return cards
	}

	first, second := draw(), draw()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}
