package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/wricardo/solitario/game/engine"
	"github.com/wricardo/solitario/game/service"
)

// Game plays one session of the game service at a text prompt
type Game struct {
	service   service.GameService
	sessionID string
	in        *bufio.Scanner
	out       io.Writer
}

// NewGame creates a prompt loop for an existing session
func NewGame(gameService service.GameService, sessionID string, in io.Reader, out io.Writer) *Game {
	return &Game{
		service:   gameService,
		sessionID: sessionID,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run shows the board and executes commands until q, end of input or ctx is done
func (g *Game) Run(ctx context.Context) error {
	state, err := g.service.GetGameState(ctx, g.sessionID)
	if err != nil {
		return err
	}
	if err := g.show(state); err != nil {
		return err
	}
	g.println(pterm.Info.Sprint(state.Message))
	g.println(pterm.FgGray.Sprint("h per l'aiuto"))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(g.out, "> ")
		if !g.in.Scan() {
			return g.in.Err()
		}
		line := strings.TrimSpace(g.in.Text())
		if line == "" {
			continue
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			g.println(pterm.Warning.Sprint(err.Error()))
			continue
		}
		if cmd.Kind == CmdQuit {
			return nil
		}

		if err := g.Execute(ctx, cmd); err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				return err
			}
			g.println(pterm.Warning.Sprint(err.Error()))
		}
	}
}

// Execute performs one parsed command and prints the outcome
func (g *Game) Execute(ctx context.Context, cmd Command) error {
	var (
		result *service.ActionResult
		err    error
	)

	switch cmd.Kind {
	case CmdHelp:
		g.println(helpText)
		return nil
	case CmdHint:
		return g.hint(ctx)
	case CmdSelect:
		origin, lookupErr := g.origin(ctx, cmd)
		if lookupErr != nil {
			return lookupErr
		}
		result, err = g.service.SelectCard(ctx, g.sessionID, cmd.CardID, origin)
	case CmdTableau:
		result, err = g.service.Move(ctx, g.sessionID, service.DestinationTableau, cmd.Index)
	case CmdFoundation:
		result, err = g.service.Move(ctx, g.sessionID, service.DestinationFoundation, cmd.Index)
	case CmdEmpty:
		result, err = g.service.Move(ctx, g.sessionID, service.DestinationEmpty, cmd.Index)
	case CmdDraw:
		result, err = g.service.DrawFromStock(ctx, g.sessionID)
	case CmdAutoPromote:
		result, err = g.service.AutoPromote(ctx, g.sessionID)
	case CmdAutoComplete:
		result, err = g.service.AutoComplete(ctx, g.sessionID)
	case CmdNewGame:
		result, err = g.service.NewGame(ctx, g.sessionID)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
	}
	if err != nil {
		return err
	}

	return g.report(result)
}

// origin finds the pile of the card when the command names none
func (g *Game) origin(ctx context.Context, cmd Command) (engine.PileRef, error) {
	if cmd.Origin != nil {
		return *cmd.Origin, nil
	}
	state, err := g.service.GetGameState(ctx, g.sessionID)
	if err != nil {
		return engine.PileRef{}, err
	}
	ref, _, ok := state.FindCard(cmd.CardID)
	if !ok {
		return engine.PileRef{}, fmt.Errorf("card %s is not on the board", cmd.CardID)
	}
	return ref, nil
}

func (g *Game) hint(ctx context.Context) error {
	state, err := g.service.GetGameState(ctx, g.sessionID)
	if err != nil {
		return err
	}
	moves, err := g.service.GetLegalMoves(ctx, g.sessionID)
	if err != nil {
		return err
	}
	g.println(RenderMoves(state, moves))
	return nil
}

func (g *Game) report(result *service.ActionResult) error {
	// Refused gestures leave the board as it was
	if result.Success {
		if err := g.show(result.GameState); err != nil {
			return err
		}
	}

	switch {
	case result.GameState.Won:
		g.println(pterm.Success.Sprint(result.GameState.Message))
	case !result.Success:
		g.println(pterm.Warning.Sprint(result.Message))
	case result.Message != "":
		g.println(pterm.Info.Sprint(result.Message))
	}
	return nil
}

func (g *Game) show(state *engine.GameState) error {
	board, err := RenderBoard(state)
	if err != nil {
		return err
	}
	fmt.Fprint(g.out, board)
	return nil
}

func (g *Game) println(s string) {
	fmt.Fprintln(g.out, strings.TrimRight(s, "\n"))
}
