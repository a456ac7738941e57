package terminal

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/wricardo/solitario/game/engine"
)

var suitColors = map[engine.Suit]pterm.Color{
	engine.Coppe:   pterm.FgRed,
	engine.Denari:  pterm.FgYellow,
	engine.Spade:   pterm.FgBlue,
	engine.Bastoni: pterm.FgGreen,
}

func styledCard(card engine.Card, selected bool) string {
	if card.FaceDown {
		return pterm.FgGray.Sprint("##")
	}
	label := suitColors[card.Suit].Sprint(CardLabel(card))
	if selected {
		return pterm.Bold.Sprint(">" + label + "<")
	}
	return label
}

func topLabel(pile []engine.Card, selection *engine.Selection) string {
	if len(pile) == 0 {
		return "--"
	}
	top := pile[len(pile)-1]
	return styledCard(top, selection != nil && selection.CardID == top.ID)
}

// RenderBoard draws the whole board as text
func RenderBoard(state *engine.GameState) (string, error) {
	var b strings.Builder

	b.WriteString(pterm.Bold.Sprintf("Solitario Napoletano  [%s]  mosse: %d  fondazioni: %d/%d",
		state.Variant, state.MoveCount, state.FoundationTotal(), engine.DeckSize))
	b.WriteString("\n\n")

	upper := [][]string{{}, {}}
	for i, f := range state.Foundations {
		upper[0] = append(upper[0], fmt.Sprintf("F%d", i))
		upper[1] = append(upper[1], topLabel(f, nil))
	}
	if state.Variant == engine.StockWaste {
		upper[0] = append(upper[0], "Mazzo", "Scarti")
		upper[1] = append(upper[1], fmt.Sprintf("%d", len(state.Stock)), topLabel(state.Waste, state.Selection))
	}
	foundations, err := pterm.DefaultTable.WithHasHeader().WithData(upper).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(foundations)
	b.WriteString("\n\n")

	rows := 0
	for _, pile := range state.Tableau {
		rows = max(rows, len(pile))
	}
	tableau := make([][]string, rows+1)
	for i := range state.Tableau {
		tableau[0] = append(tableau[0], fmt.Sprintf("T%d", i))
	}
	for r := 0; r < rows; r++ {
		for _, pile := range state.Tableau {
			cell := ""
			if r < len(pile) {
				card := pile[r]
				cell = styledCard(card, state.Selection != nil && state.Selection.CardID == card.ID)
			}
			tableau[r+1] = append(tableau[r+1], cell)
		}
	}
	if rows == 0 {
		tableau = append(tableau, make([]string, len(state.Tableau)))
	}
	piles, err := pterm.DefaultTable.WithHasHeader().WithData(tableau).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(piles)
	b.WriteString("\n")

	return b.String(), nil
}

// RenderMoves lists legal moves with the command that plays each one
func RenderMoves(state *engine.GameState, moves []engine.Move) string {
	if len(moves) == 0 {
		return "Nessuna mossa possibile"
	}

	lines := make([]string, 0, len(moves))
	for _, m := range moves {
		label := m.CardID
		if c, ok := findCard(state, m.CardID); ok {
			label = CardLabel(c)
		}
		lines = append(lines, fmt.Sprintf("%-4s %s -> %s   (%s)", label, pileName(m.From), pileName(m.To), playCommand(state, m)))
	}
	return strings.Join(lines, "\n")
}

func findCard(state *engine.GameState, cardID string) (engine.Card, bool) {
	ref, index, ok := state.FindCard(cardID)
	if !ok {
		return engine.Card{}, false
	}
	switch ref.Kind {
	case engine.Tableau:
		return state.Tableau[ref.Index][index], true
	case engine.Foundation:
		return state.Foundations[ref.Index][index], true
	case engine.Waste:
		return state.Waste[index], true
	default:
		return state.Stock[index], true
	}
}

func pileName(ref engine.PileRef) string {
	switch ref.Kind {
	case engine.Tableau:
		return fmt.Sprintf("T%d", ref.Index)
	case engine.Foundation:
		return fmt.Sprintf("F%d", ref.Index)
	case engine.Waste:
		return "scarti"
	default:
		return "mazzo"
	}
}

// playCommand is the pair of prompt commands that performs m
func playCommand(state *engine.GameState, m engine.Move) string {
	card := strings.ToLower(m.CardID)
	if c, ok := findCard(state, m.CardID); ok {
		card = strings.ToLower(CardLabel(c))
	}
	dest := "t"
	switch {
	case m.To.Kind == engine.Foundation:
		dest = "f"
	case len(state.Tableau[m.To.Index]) == 0:
		dest = "e"
	}
	return fmt.Sprintf("s %s, %s %d", card, dest, m.To.Index)
}
