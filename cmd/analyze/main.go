// Command analyze deals many seeded games for each configuration in the
// configs directory, plays them with a greedy autoplayer and prints how often
// each variant comes out, along with the average moves and cards homed.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/solitario/game/config"
	"github.com/wricardo/solitario/game/engine"
)

// PlayOptions bounds a single autoplayed game
type PlayOptions struct {
	MaxMoves    int
	MaxRecycles int
}

// GameResult is the outcome of one autoplayed game
type GameResult struct {
	Won        bool
	Moves      int
	Foundation int
}

// Summary aggregates the results for one configuration
type Summary struct {
	ConfigID      string
	Variant       engine.Variant
	Games         int
	Wins          int
	AvgMoves      float64
	AvgFoundation float64
}

// WinRate is the share of won games, 0 to 1
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Estimate win rates of the game configurations with a greedy autoplayer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing game configurations"},
			&cli.StringSliceFlag{Name: "config", Usage: "Only analyze these configurations (repeatable)"},
			&cli.IntFlag{Name: "games", Value: 200, Usage: "Games to deal per configuration"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "Seed of the first deal; game i uses seed+i"},
			&cli.IntFlag{Name: "max-moves", Value: 1000, Usage: "Give up a game after this many gestures"},
			&cli.IntFlag{Name: "max-recycles", Value: 3, Usage: "Waste recycles allowed per game"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	names := cmd.StringSlice("config")
	if len(names) == 0 {
		infos, err := manager.ListConfigs()
		if err != nil {
			return err
		}
		for _, info := range infos {
			names = append(names, info.ConfigID)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no configurations found in %s", cmd.String("config-dir"))
	}

	opts := PlayOptions{MaxMoves: cmd.Int("max-moves"), MaxRecycles: cmd.Int("max-recycles")}
	games := cmd.Int("games")
	if games < 1 {
		return fmt.Errorf("games must be positive, got %d", games)
	}

	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		cfg, err := manager.LoadConfig(name)
		if err != nil {
			return err
		}
		pterm.Info.Printfln("Analyzing %s (%d games)", name, games)

		summary, err := Analyze(cfg, games, cmd.Int64("seed"), opts)
		if err != nil {
			return err
		}
		summary.ConfigID = name
		summaries = append(summaries, summary)
	}

	return pterm.DefaultTable.WithHasHeader().WithData(summaryTable(summaries)).Render()
}

func summaryTable(summaries []Summary) pterm.TableData {
	data := pterm.TableData{{"Config", "Variant", "Games", "Wins", "Win rate", "Avg moves", "Avg foundation"}}
	for _, s := range summaries {
		data = append(data, []string{
			s.ConfigID,
			string(s.Variant),
			fmt.Sprintf("%d", s.Games),
			fmt.Sprintf("%d", s.Wins),
			fmt.Sprintf("%.1f%%", 100*s.WinRate()),
			fmt.Sprintf("%.1f", s.AvgMoves),
			fmt.Sprintf("%.1f/%d", s.AvgFoundation, engine.DeckSize),
		})
	}
	return data
}

// Analyze plays games deals of cfg seeded baseSeed, baseSeed+1, ...
func Analyze(cfg *engine.GameConfig, games int, baseSeed int64, opts PlayOptions) (Summary, error) {
	summary := Summary{Variant: cfg.Variant, Games: games}

	var moves, foundation int
	for i := 0; i < games; i++ {
		e, err := engine.NewEngine(cfg, engine.WithSeed(baseSeed+int64(i)))
		if err != nil {
			return Summary{}, err
		}
		result := PlayGame(e, opts)
		if result.Won {
			summary.Wins++
		}
		moves += result.Moves
		foundation += result.Foundation
	}

	summary.AvgMoves = float64(moves) / float64(games)
	summary.AvgFoundation = float64(foundation) / float64(games)
	return summary, nil
}

// PlayGame plays greedily until the game is won or no new position can be
// reached. Foundation moves come first, then moves that turn up a face-down
// card, then waste plays, then any move to an unseen position, then a draw.
func PlayGame(e *engine.GameEngine, opts PlayOptions) GameResult {
	seen := map[string]bool{fingerprint(e.GetState()): true}
	recycles := 0

	for e.GetMoveCount() < opts.MaxMoves && !e.IsWon() {
		state := e.GetState()

		if m, ok := chooseMove(state, e.GetLegalMoves(), seen); ok {
			play(e, state, m)
			seen[fingerprint(e.GetState())] = true
			continue
		}

		if state.Variant != engine.StockWaste {
			break
		}
		if len(state.Stock) == 0 {
			if len(state.Waste) == 0 || recycles >= opts.MaxRecycles {
				break
			}
			recycles++
		}
		if !e.DrawFromStock() {
			break
		}
		seen[fingerprint(e.GetState())] = true
	}

	state := e.GetState()
	return GameResult{Won: state.Won, Moves: state.MoveCount, Foundation: state.FoundationTotal()}
}

func chooseMove(state *engine.GameState, moves []engine.Move, seen map[string]bool) (engine.Move, bool) {
	best, bestScore := engine.Move{}, -1
	for _, m := range moves {
		score := moveScore(state, m)
		if score <= bestScore {
			continue
		}
		if seen[fingerprint(after(state, m))] {
			continue
		}
		best, bestScore = m, score
	}
	return best, bestScore >= 0
}

func moveScore(state *engine.GameState, m engine.Move) int {
	if m.To.Kind == engine.Foundation {
		return 3
	}
	if m.From.Kind == engine.Waste {
		return 1
	}
	pile := state.Tableau[m.From.Index]
	if len(pile) >= 2 && pile[len(pile)-2].FaceDown {
		return 2
	}
	if len(pile) == 1 {
		return 1
	}
	return 0
}

// after is the board once m is played, ignoring any automatic promotion
func after(state *engine.GameState, m engine.Move) *engine.GameState {
	next := state.Clone()
	next.SelectCard(m.CardID, m.From)
	next.MoveSelected(m.To, func(engine.Card, []engine.Card) bool { return true }, engine.Messages{})
	return next
}

func play(e *engine.GameEngine, state *engine.GameState, m engine.Move) bool {
	if !e.SelectCard(m.CardID, m.From) {
		return false
	}
	switch {
	case m.To.Kind == engine.Foundation:
		return e.MoveToFoundation(m.To.Index)
	case len(state.Tableau[m.To.Index]) == 0:
		return e.MoveToEmptyPile(m.To.Index)
	default:
		return e.MoveToTableau(m.To.Index)
	}
}

func fingerprint(state *engine.GameState) string {
	var b strings.Builder
	for _, pile := range state.Tableau {
		for _, c := range pile {
			b.WriteString(c.ID)
			if c.FaceDown {
				b.WriteByte('*')
			}
			b.WriteByte(',')
		}
		b.WriteByte('|')
	}
	fmt.Fprintf(&b, "s%d w%d", len(state.Stock), len(state.Waste))
	if n := len(state.Waste); n > 0 {
		b.WriteString(state.Waste[n-1].ID)
	}
	return b.String()
}
