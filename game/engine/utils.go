package engine

import "fmt"

// Move describes one legal single-card move
type Move struct {
	CardID string  `json:"card_id"`
	From   PileRef `json:"from"`
	To     PileRef `json:"to"`
}

// FoundationTotal counts the cards on all foundations
func (gs *GameState) FoundationTotal() int {
	total := 0
	for _, f := range gs.Foundations {
		total += len(f)
	}
	return total
}

// CountCards counts the cards across every pile on the board
func (gs *GameState) CountCards() int {
	total := gs.FoundationTotal() + len(gs.Stock) + len(gs.Waste)
	for _, p := range gs.Tableau {
		total += len(p)
	}
	return total
}

// CountFaceDown counts the face-down cards in the tableau
func (gs *GameState) CountFaceDown() int {
	count := 0
	for _, p := range gs.Tableau {
		for _, c := range p {
			if c.FaceDown {
				count++
			}
		}
	}
	return count
}

// FindCard locates a card by ID and returns its pile and position
func (gs *GameState) FindCard(cardID string) (PileRef, int, bool) {
	for i, p := range gs.Tableau {
		if pos := indexOf(p, cardID); pos >= 0 {
			return PileRef{Kind: Tableau, Index: i}, pos, true
		}
	}
	for i, p := range gs.Foundations {
		if pos := indexOf(p, cardID); pos >= 0 {
			return PileRef{Kind: Foundation, Index: i}, pos, true
		}
	}
	if pos := indexOf(gs.Stock, cardID); pos >= 0 {
		return PileRef{Kind: Stock}, pos, true
	}
	if pos := indexOf(gs.Waste, cardID); pos >= 0 {
		return PileRef{Kind: Waste}, pos, true
	}
	return PileRef{}, -1, false
}

// LegalMoves lists every legal single-card move on the board. Only the first
// empty tableau pile is offered as a target since empty piles are interchangeable.
func (gs *GameState) LegalMoves() []Move {
	if gs.Won {
		return nil
	}

	var sources []PileRef
	for i := range gs.Tableau {
		sources = append(sources, PileRef{Kind: Tableau, Index: i})
	}
	if gs.Variant == StockWaste {
		sources = append(sources, PileRef{Kind: Waste})
	}

	var moves []Move
	for _, src := range sources {
		top, ok := topCard(*gs.pile(src))
		if !ok || top.FaceDown {
			continue
		}

		for f := range gs.Foundations {
			if CanMoveToFoundation(top, gs.Foundations[f]) {
				moves = append(moves, Move{CardID: top.ID, From: src, To: PileRef{Kind: Foundation, Index: f}})
			}
		}

		emptyOffered := false
		for t := range gs.Tableau {
			if src.Kind == Tableau && src.Index == t {
				continue
			}
			if len(gs.Tableau[t]) == 0 {
				// Moving a lone card to another empty pile changes nothing.
				if emptyOffered || (src.Kind == Tableau && len(gs.Tableau[src.Index]) == 1) {
					continue
				}
				emptyOffered = true
			}
			if CanMoveToTableau(top, gs.Tableau[t]) {
				moves = append(moves, Move{CardID: top.ID, From: src, To: PileRef{Kind: Tableau, Index: t}})
			}
		}
	}
	return moves
}

// Clone returns a deep copy of the state
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	clone := *gs
	clone.Tableau = clonePiles(gs.Tableau)
	clone.Foundations = clonePiles(gs.Foundations)
	clone.Stock = clonePile(gs.Stock)
	clone.Waste = clonePile(gs.Waste)
	if gs.Selection != nil {
		sel := *gs.Selection
		clone.Selection = &sel
	}
	return &clone
}

// ValidateState checks board shape and that the 40 cards are each present once
func ValidateState(gs *GameState) error {
	if gs == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if !gs.Variant.Valid() {
		return fmt.Errorf("state validation: unknown variant %q", gs.Variant)
	}
	if len(gs.Tableau) != TableauPiles {
		return fmt.Errorf("state validation: expected %d tableau piles, got %d", TableauPiles, len(gs.Tableau))
	}
	if len(gs.Foundations) != FoundationPiles {
		return fmt.Errorf("state validation: expected %d foundations, got %d", FoundationPiles, len(gs.Foundations))
	}
	if gs.Variant == Classic && (len(gs.Stock) > 0 || len(gs.Waste) > 0) {
		return fmt.Errorf("state validation: classic variant has no stock or waste")
	}

	canonical := make(map[string]Card, DeckSize)
	for _, c := range BuildDeck() {
		canonical[c.ID] = c
	}

	seen := make(map[string]bool, DeckSize)
	check := func(pile []Card) error {
		for _, c := range pile {
			want, ok := canonical[c.ID]
			if !ok || want.Suit != c.Suit || want.Rank != c.Rank || want.Value != c.Value {
				return fmt.Errorf("state validation: unknown card %q", c.ID)
			}
			if seen[c.ID] {
				return fmt.Errorf("state validation: duplicate card %q", c.ID)
			}
			seen[c.ID] = true
		}
		return nil
	}

	piles := append(append([][]Card{}, gs.Tableau...), gs.Foundations...)
	piles = append(piles, gs.Stock, gs.Waste)
	for _, p := range piles {
		if err := check(p); err != nil {
			return err
		}
	}
	if len(seen) != DeckSize {
		return fmt.Errorf("state validation: expected %d cards, got %d", DeckSize, len(seen))
	}

	for i, f := range gs.Foundations {
		for j, c := range f {
			if !CanMoveToFoundation(c, f[:j]) {
				return fmt.Errorf("state validation: foundation %d is out of sequence at %q", i, c.ID)
			}
		}
	}
	return nil
}

func indexOf(pile []Card, cardID string) int {
	for i, c := range pile {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

func clonePile(pile []Card) []Card {
	out := make([]Card, len(pile))
	copy(out, pile)
	return out
}

func clonePiles(piles [][]Card) [][]Card {
	out := make([][]Card, len(piles))
	for i, p := range piles {
		out[i] = clonePile(p)
	}
	return out
}
