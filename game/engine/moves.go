package engine

import "fmt"

// pile returns the addressed pile, or nil when ref does not exist
func (gs *GameState) pile(ref PileRef) *[]Card {
	switch ref.Kind {
	case Tableau:
		if ref.Index < 0 || ref.Index >= len(gs.Tableau) {
			return nil
		}
		return &gs.Tableau[ref.Index]
	case Foundation:
		if ref.Index < 0 || ref.Index >= len(gs.Foundations) {
			return nil
		}
		return &gs.Foundations[ref.Index]
	case Stock:
		return &gs.Stock
	case Waste:
		return &gs.Waste
	}
	return nil
}

// SelectCard picks up a face-up card from a tableau pile or the waste.
// Selecting the selected card again drops it. Returns whether the selection changed.
func (gs *GameState) SelectCard(cardID string, origin PileRef) bool {
	if gs.Won {
		return false
	}
	if origin.Kind != Tableau && origin.Kind != Waste {
		return false
	}
	if origin.Kind == Waste {
		origin.Index = 0
	}

	p := gs.pile(origin)
	if p == nil {
		return false
	}
	card, ok := findInPile(*p, cardID)
	if !ok || card.FaceDown {
		return false
	}

	if gs.Selection != nil && gs.Selection.CardID == cardID {
		gs.Selection = nil
		return true
	}

	gs.Selection = &Selection{CardID: cardID, Origin: origin}
	return true
}

// MoveSelected moves the selected card onto dest when legal accepts it.
// The selection is cleared whatever the outcome.
func (gs *GameState) MoveSelected(dest PileRef, legal func(Card, []Card) bool, msgs Messages) bool {
	sel := gs.Selection
	gs.Selection = nil

	if gs.Won {
		return false
	}
	if sel == nil {
		gs.Message = msgs.NoSelection
		return false
	}

	from := gs.pile(sel.Origin)
	to := gs.pile(dest)
	if from == nil || to == nil || sel.Origin == dest || !CanMoveFrom(sel.CardID, *from) {
		gs.Message = msgs.InvalidMove
		return false
	}

	card := (*from)[len(*from)-1]
	if !legal(card, *to) {
		gs.Message = msgs.InvalidMove
		return false
	}

	*from = (*from)[:len(*from)-1]
	*to = append(*to, card)
	if sel.Origin.Kind == Tableau {
		gs.flipTop(sel.Origin.Index)
	}

	gs.MoveCount++
	gs.Message = ""
	gs.checkWin(msgs)
	return true
}

// DrawFromStock turns the stock top onto the waste, or recycles the waste into
// the stock when the stock is empty. Only the stock/waste variant has a stock.
func (gs *GameState) DrawFromStock(msgs Messages) bool {
	if gs.Won || gs.Variant != StockWaste {
		return false
	}
	gs.Selection = nil

	if n := len(gs.Stock); n > 0 {
		card := gs.Stock[n-1]
		gs.Stock = gs.Stock[:n-1]
		card.FaceDown = false
		gs.Waste = append(gs.Waste, card)
		gs.MoveCount++
		gs.Message = msgs.Drawn
		gs.checkWin(msgs)
		return true
	}

	if len(gs.Waste) == 0 {
		return false
	}

	stock := make([]Card, 0, len(gs.Waste))
	for i := len(gs.Waste) - 1; i >= 0; i-- {
		card := gs.Waste[i]
		card.FaceDown = true
		stock = append(stock, card)
	}
	gs.Stock = stock
	gs.Waste = []Card{}
	gs.MoveCount++
	gs.Message = msgs.Recycled
	gs.checkWin(msgs)
	return true
}

// AutoPromote runs one promotion pass and returns the number of cards moved.
// The waste top goes first (stock/waste variant), then each tableau pile left to
// right, each at most once. A productive pass counts as a single move.
func (gs *GameState) AutoPromote(msgs Messages) int {
	if gs.Won {
		return 0
	}

	promoted := 0
	if gs.Variant == StockWaste {
		if top, ok := topCard(gs.Waste); ok && !top.FaceDown {
			if f := gs.firstFoundationFor(top); f >= 0 {
				gs.Waste = gs.Waste[:len(gs.Waste)-1]
				gs.Foundations[f] = append(gs.Foundations[f], top)
				promoted++
			}
		}
	}

	for i := range gs.Tableau {
		top, ok := topCard(gs.Tableau[i])
		if !ok || top.FaceDown {
			continue
		}
		f := gs.firstFoundationFor(top)
		if f < 0 {
			continue
		}
		gs.Tableau[i] = gs.Tableau[i][:len(gs.Tableau[i])-1]
		gs.Foundations[f] = append(gs.Foundations[f], top)
		gs.flipTop(i)
		promoted++
	}

	if promoted == 0 {
		gs.Message = msgs.NothingToPromote
		return 0
	}

	gs.MoveCount++
	gs.Selection = nil
	gs.Message = fmt.Sprintf(msgs.Promoted, promoted)
	gs.checkWin(msgs)
	return promoted
}

// firstFoundationFor returns the lowest foundation index accepting card, or -1
func (gs *GameState) firstFoundationFor(card Card) int {
	for f := range gs.Foundations {
		if CanMoveToFoundation(card, gs.Foundations[f]) {
			return f
		}
	}
	return -1
}

// flipTop turns the top card of tableau pile index face-up if it is face-down
func (gs *GameState) flipTop(index int) bool {
	p := gs.Tableau[index]
	if len(p) == 0 || !p[len(p)-1].FaceDown {
		return false
	}
	p[len(p)-1].FaceDown = false
	return true
}

// checkWin marks the game won once every card sits on a foundation
func (gs *GameState) checkWin(msgs Messages) {
	if gs.FoundationTotal() != DeckSize {
		return
	}
	gs.Won = true
	gs.Phase = PhaseWon
	gs.Selection = nil
	gs.Message = fmt.Sprintf(msgs.Victory, gs.MoveCount)
}

func findInPile(pile []Card, cardID string) (Card, bool) {
	for _, c := range pile {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}
