package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fillerPile receives every card a test board does not place explicitly.
const fillerPile = TableauPiles - 1

// parseCard turns "Coppe-Asso" into a card; a leading "~" marks it face-down.
func parseCard(t *testing.T, desc string) Card {
	t.Helper()
	faceDown := strings.HasPrefix(desc, "~")
	desc = strings.TrimPrefix(desc, "~")
	parts := strings.SplitN(desc, "-", 2)
	require.Len(t, parts, 2, "bad card %q", desc)
	c := NewCard(Suit(parts[0]), Rank(parts[1]))
	require.NotZero(t, c.Value, "unknown rank in %q", desc)
	c.FaceDown = faceDown
	return c
}

func parsePile(t *testing.T, specs []string) []Card {
	t.Helper()
	pile := make([]Card, 0, len(specs))
	for _, s := range specs {
		pile = append(pile, parseCard(t, s))
	}
	return pile
}

// buildState lays out a board. Cards not named anywhere are put face-down at the
// bottom of the filler pile so the board always holds the full deck.
func buildState(t *testing.T, variant Variant, tableau map[int][]string, foundations map[int][]string, stock, waste []string) *GameState {
	t.Helper()
	gs := &GameState{
		Variant:     variant,
		Tableau:     make([][]Card, TableauPiles),
		Foundations: make([][]Card, FoundationPiles),
		Stock:       []Card{},
		Waste:       []Card{},
	}
	used := map[string]bool{}
	mark := func(pile []Card) {
		for _, c := range pile {
			used[c.ID] = true
		}
	}

	for i := range gs.Tableau {
		gs.Tableau[i] = parsePile(t, tableau[i])
		mark(gs.Tableau[i])
	}
	for i := range gs.Foundations {
		gs.Foundations[i] = parsePile(t, foundations[i])
		mark(gs.Foundations[i])
	}
	for _, s := range stock {
		c := parseCard(t, s)
		c.FaceDown = true
		gs.Stock = append(gs.Stock, c)
	}
	mark(gs.Stock)
	gs.Waste = parsePile(t, waste)
	mark(gs.Waste)

	var filler []Card
	for _, c := range BuildDeck() {
		if !used[c.ID] {
			c.FaceDown = true
			filler = append(filler, c)
		}
	}
	gs.Tableau[fillerPile] = append(filler, gs.Tableau[fillerPile]...)

	require.NoError(t, ValidateState(gs))
	return gs
}

// newTestEngine returns an engine for variant preloaded with state
func newTestEngine(t *testing.T, state *GameState) *GameEngine {
	t.Helper()
	eng, err := NewEngine(DefaultGameConfig(state.Variant))
	require.NoError(t, err)
	require.NoError(t, eng.SetState(state))
	return eng
}

// suitRun returns the ten cards of suit from Re down to Asso, all face-up
func suitRun(suit Suit) []string {
	run := make([]string, 0, len(Ranks))
	for i := len(Ranks) - 1; i >= 0; i-- {
		run = append(run, CardID(suit, Ranks[i]))
	}
	return run
}

// fullFoundation returns Asso up to the given rank for suit
func fullFoundation(suit Suit, upTo Rank) []string {
	var out []string
	for _, r := range Ranks {
		out = append(out, CardID(suit, r))
		if r == upTo {
			break
		}
	}
	return out
}

func ids(pile []Card) []string {
	out := make([]string, len(pile))
	for i, c := range pile {
		out[i] = c.ID
	}
	return out
}
