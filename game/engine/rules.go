package engine

// CanMoveToFoundation reports whether card may be placed on foundation.
// An empty foundation takes only an Asso; otherwise the card must follow the top
// card in the same suit.
func CanMoveToFoundation(card Card, foundation []Card) bool {
	if len(foundation) == 0 {
		return card.Rank == Asso
	}
	top := foundation[len(foundation)-1]
	return top.Suit == card.Suit && card.Value == top.Value+1
}

// CanMoveToTableau reports whether card may be placed on a tableau pile.
// Any card starts an empty pile. Otherwise the card must be exactly one rank
// below the top card, whatever the suit.
func CanMoveToTableau(card Card, pile []Card) bool {
	if len(pile) == 0 {
		return true
	}
	top := pile[len(pile)-1]
	return card.Value == top.Value-1
}

// CanMoveFrom reports whether the card with cardID can leave pile: it must be
// the face-up top card.
func CanMoveFrom(cardID string, pile []Card) bool {
	top, ok := topCard(pile)
	return ok && top.ID == cardID && !top.FaceDown
}

// topCard returns the last card of pile
func topCard(pile []Card) (Card, bool) {
	if len(pile) == 0 {
		return Card{}, false
	}
	return pile[len(pile)-1], true
}
