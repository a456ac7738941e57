package engine

import (
	"fmt"
	"math/rand/v2"
)

// RNG is the random source used for shuffling
type RNG interface {
	IntN(n int) int
}

// NewRNG returns a PCG-backed source seeded with seed
func NewRNG(seed int64) RNG {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// autoRNG delegates to the auto-seeded global source in math/rand/v2.
type autoRNG struct{}

func (autoRNG) IntN(n int) int { return rand.IntN(n) }

// CardID returns the identity string for a suit and rank
func CardID(suit Suit, rank Rank) string {
	return fmt.Sprintf("%s-%s", suit, rank)
}

// NewCard builds a face-up card
func NewCard(suit Suit, rank Rank) Card {
	return Card{
		Suit:  suit,
		Rank:  rank,
		Value: RankValue(rank),
		ID:    CardID(suit, rank),
	}
}

// RankValue returns 1 for Asso up to 10 for Re, or 0 for an unknown rank
func RankValue(rank Rank) int {
	for i, r := range Ranks {
		if r == rank {
			return i + 1
		}
	}
	return 0
}

// BuildDeck returns the 40 cards in canonical suit-major order, all face-up
func BuildDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, NewCard(suit, rank))
		}
	}
	return deck
}

// Shuffle returns a Fisher-Yates permutation of deck. The input is not modified.
func Shuffle(deck []Card, rng RNG) []Card {
	if rng == nil {
		rng = autoRNG{}
	}
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
