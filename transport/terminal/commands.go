package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wricardo/solitario/game/engine"
)

// ErrUnknownCommand is returned for input that is not a gesture
var ErrUnknownCommand = errors.New("unknown command")

// CommandKind identifies a player gesture typed at the prompt
type CommandKind string

const (
	CmdSelect       CommandKind = "select"
	CmdTableau      CommandKind = "tableau"
	CmdFoundation   CommandKind = "foundation"
	CmdEmpty        CommandKind = "empty"
	CmdDraw         CommandKind = "draw"
	CmdAutoPromote  CommandKind = "auto_promote"
	CmdAutoComplete CommandKind = "auto_complete"
	CmdNewGame      CommandKind = "new_game"
	CmdHint         CommandKind = "hint"
	CmdHelp         CommandKind = "help"
	CmdQuit         CommandKind = "quit"
)

// Command is one parsed line of input. Origin is nil when a select names
// no pile; the pile is then looked up on the board.
type Command struct {
	Kind   CommandKind
	CardID string
	Origin *engine.PileRef
	Index  int
}

var suitLetters = map[byte]engine.Suit{
	'c': engine.Coppe,
	's': engine.Spade,
	'd': engine.Denari,
	'b': engine.Bastoni,
}

// ParseCommand parses a prompt line:
//
//	s <card> [pile]   select (pile: w or t<i> or <i>)
//	t <i>  f <i>  e <i>   move to tableau, foundation, empty pile
//	d  a  c  n  m  h  q   draw, auto-promote, auto-complete, new game, hint, help, quit
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}

	simple := map[string]CommandKind{
		"d": CmdDraw, "a": CmdAutoPromote, "c": CmdAutoComplete, "n": CmdNewGame,
		"m": CmdHint, "h": CmdHelp, "?": CmdHelp, "q": CmdQuit,
	}
	if kind, ok := simple[fields[0]]; ok {
		if len(fields) != 1 {
			return Command{}, fmt.Errorf("%q takes no arguments", fields[0])
		}
		return Command{Kind: kind}, nil
	}

	switch fields[0] {
	case "s":
		if len(fields) < 2 || len(fields) > 3 {
			return Command{}, fmt.Errorf("usage: s <card> [pile]")
		}
		cardID, err := ParseCard(fields[1])
		if err != nil {
			return Command{}, err
		}
		cmd := Command{Kind: CmdSelect, CardID: cardID}
		if len(fields) == 3 {
			origin, err := parseOrigin(fields[2])
			if err != nil {
				return Command{}, err
			}
			cmd.Origin = &origin
		}
		return cmd, nil

	case "t", "f", "e":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: %s <pile>", fields[0])
		}
		index, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, fmt.Errorf("pile must be a number, got %q", fields[1])
		}
		kind := map[string]CommandKind{"t": CmdTableau, "f": CmdFoundation, "e": CmdEmpty}[fields[0]]
		return Command{Kind: kind, Index: index}, nil
	}

	return Command{}, fmt.Errorf("%w: %q (h for help)", ErrUnknownCommand, fields[0])
}

// ParseCard accepts a full card ID such as "coppe-asso" or a short label
// such as "1c" or "10b" (value then suit initial) and returns the card ID.
func ParseCard(token string) (string, error) {
	token = strings.ToLower(strings.TrimSpace(token))

	for _, suit := range engine.Suits {
		for _, rank := range engine.Ranks {
			if strings.ToLower(engine.CardID(suit, rank)) == token {
				return engine.CardID(suit, rank), nil
			}
		}
	}

	if len(token) >= 2 {
		suit, ok := suitLetters[token[len(token)-1]]
		value, err := strconv.Atoi(token[:len(token)-1])
		if ok && err == nil && value >= 1 && value <= len(engine.Ranks) {
			return engine.CardID(suit, engine.Ranks[value-1]), nil
		}
	}

	return "", fmt.Errorf("unknown card %q (try 7c or Coppe-Sette)", token)
}

func parseOrigin(token string) (engine.PileRef, error) {
	if token == "w" {
		return engine.PileRef{Kind: engine.Waste}, nil
	}
	index, err := strconv.Atoi(strings.TrimPrefix(token, "t"))
	if err != nil {
		return engine.PileRef{}, fmt.Errorf("pile must be w or t<i>, got %q", token)
	}
	return engine.PileRef{Kind: engine.Tableau, Index: index}, nil
}

// CardLabel is the short form of a card: value then suit initial
func CardLabel(card engine.Card) string {
	return fmt.Sprintf("%d%c", card.Value, strings.ToUpper(string(card.Suit))[0])
}

const helpText = `Gesti:
  s <carta> [pila]  seleziona una carta (es. s 7c, s 7c t3, s 2d w)
  t <i>             sposta sulla pila i del tableau
  f <i>             sposta sulla fondazione i
  e <i>             sposta su una pila vuota
  d                 pesca dal mazzo
  a                 porta le carte nelle fondazioni
  c                 auto-completa
  n                 nuova partita
  m                 mosse possibili
  h                 aiuto
  q                 esci`
