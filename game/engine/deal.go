package engine

import "fmt"

// Layout is the board produced by the dealer
type Layout struct {
	Tableau [][]Card
	Stock   []Card
}

// Deal distributes deck row-major across the tableau for the given variant.
// Row r fills piles 0..9 before row r+1 starts, consuming deck in order.
func Deal(variant Variant, deck []Card) (Layout, error) {
	if len(deck) != DeckSize {
		return Layout{}, fmt.Errorf("deal: deck must have %d cards, got %d", DeckSize, len(deck))
	}

	rows := 0
	switch variant {
	case Classic:
		rows = ClassicRows
	case StockWaste:
		rows = StockWasteRows
	default:
		return Layout{}, fmt.Errorf("deal: unknown variant %q", variant)
	}

	layout := Layout{
		Tableau: make([][]Card, TableauPiles),
		Stock:   []Card{},
	}
	for i := range layout.Tableau {
		layout.Tableau[i] = make([]Card, 0, rows)
	}

	next := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < TableauPiles; col++ {
			card := deck[next]
			card.FaceDown = variant == Classic && row < ClassicHidden
			layout.Tableau[col] = append(layout.Tableau[col], card)
			next++
		}
	}

	for ; next < len(deck); next++ {
		card := deck[next]
		card.FaceDown = true
		layout.Stock = append(layout.Stock, card)
	}

	return layout, nil
}
