package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	NewGame() *GameState
	IsWon() bool
	GetMoveCount() int
	GetVariant() Variant

	// Gestures
	SelectCard(cardID string, origin PileRef) bool
	MoveToTableau(pileIndex int) bool
	MoveToFoundation(foundationIndex int) bool
	MoveToEmptyPile(pileIndex int) bool
	DrawFromStock() bool
	AutoPromote() int
	AutoComplete() int

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// Hints
	GetLegalMoves() []Move
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
	rng    RNG
}

// Option customizes a GameEngine
type Option func(*GameEngine)

// WithRNG sets the shuffle source
func WithRNG(rng RNG) Option {
	return func(e *GameEngine) {
		e.rng = rng
	}
}

// WithSeed makes every deal of the engine reproducible from seed
func WithSeed(seed int64) Option {
	return WithRNG(NewRNG(seed))
}

// NewEngine creates a new game engine with the provided configuration and deals
// the first game
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		rng:    autoRNG{},
	}
	for _, opt := range opts {
		opt(engine)
	}

	engine.state = engine.deal()
	return engine, nil
}

// NewEngineWithDefaults creates a classic game engine with the built-in configuration
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	engine, _ := NewEngine(DefaultGameConfig(Classic), opts...)
	return engine
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state.Clone()
}

// SetState replaces the board after validating it. Won and phase are derived
// from the foundations.
func (e *GameEngine) SetState(state *GameState) error {
	if err := ValidateState(state); err != nil {
		return err
	}
	if state.Selection != nil {
		p := state.pile(state.Selection.Origin)
		if p == nil || indexOf(*p, state.Selection.CardID) < 0 {
			return fmt.Errorf("state validation: selection %q is not in its origin pile", state.Selection.CardID)
		}
	}

	next := state.Clone()
	next.Won = next.FoundationTotal() == DeckSize
	next.Phase = PhasePlaying
	if next.Won {
		next.Phase = PhaseWon
		next.Selection = nil
	}
	if next.ConfigName == "" {
		next.ConfigName = e.config.Name
	}
	e.state = next
	return nil
}

// NewGame shuffles and deals a fresh game
func (e *GameEngine) NewGame() *GameState {
	e.state = e.deal()
	return e.GetState()
}

// IsWon returns whether every card reached the foundations
func (e *GameEngine) IsWon() bool {
	return e.state.Won
}

// GetMoveCount returns the number of moves made since the deal
func (e *GameEngine) GetMoveCount() int {
	return e.state.MoveCount
}

// GetVariant returns the variant being played
func (e *GameEngine) GetVariant() Variant {
	return e.state.Variant
}

// SelectCard selects or deselects a face-up card in a tableau pile or the waste
func (e *GameEngine) SelectCard(cardID string, origin PileRef) bool {
	return e.state.SelectCard(cardID, origin)
}

// MoveToTableau moves the selected card onto tableau pile pileIndex
func (e *GameEngine) MoveToTableau(pileIndex int) bool {
	return e.afterMove(e.state.MoveSelected(PileRef{Kind: Tableau, Index: pileIndex}, CanMoveToTableau, e.config.Messages))
}

// MoveToFoundation moves the selected card onto foundation foundationIndex
func (e *GameEngine) MoveToFoundation(foundationIndex int) bool {
	return e.afterMove(e.state.MoveSelected(PileRef{Kind: Foundation, Index: foundationIndex}, CanMoveToFoundation, e.config.Messages))
}

// MoveToEmptyPile moves the selected card onto tableau pile pileIndex if it is empty
func (e *GameEngine) MoveToEmptyPile(pileIndex int) bool {
	empty := func(_ Card, pile []Card) bool { return len(pile) == 0 }
	return e.afterMove(e.state.MoveSelected(PileRef{Kind: Tableau, Index: pileIndex}, empty, e.config.Messages))
}

// DrawFromStock draws one card, or recycles the waste when the stock is empty
func (e *GameEngine) DrawFromStock() bool {
	return e.state.DrawFromStock(e.config.Messages)
}

// AutoPromote runs a single promotion pass and returns the cards moved
func (e *GameEngine) AutoPromote() int {
	return e.state.AutoPromote(e.config.Messages)
}

// AutoComplete repeats promotion passes until one moves nothing
func (e *GameEngine) AutoComplete() int {
	total := 0
	for i := 0; i < MaxAutoCompletePasses; i++ {
		moved := e.AutoPromote()
		if moved == 0 {
			break
		}
		total += moved
	}
	return total
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and deals a new game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = e.deal()
	return nil
}

// GetLegalMoves returns every legal single-card move on the current board
func (e *GameEngine) GetLegalMoves() []Move {
	return e.state.LegalMoves()
}

// afterMove runs the optional promotion pass that follows a successful move
func (e *GameEngine) afterMove(moved bool) bool {
	if moved && e.config.AutoPromoteAfterMove && !e.state.Won {
		if e.state.AutoPromote(e.config.Messages) == 0 {
			e.state.Message = ""
		}
	}
	return moved
}

// deal builds, shuffles and deals a new board for the configured variant
func (e *GameEngine) deal() *GameState {
	state := &GameState{
		DealID:      uuid.NewString(),
		ConfigName:  e.config.Name,
		Variant:     e.config.Variant,
		Phase:       PhaseDealing,
		Foundations: make([][]Card, FoundationPiles),
		Waste:       []Card{},
	}
	for i := range state.Foundations {
		state.Foundations[i] = []Card{}
	}

	layout, err := Deal(e.config.Variant, Shuffle(BuildDeck(), e.rng))
	if err != nil {
		// The variant was validated with the config, so Deal cannot fail here.
		panic(fmt.Sprintf("engine: %v", err))
	}

	state.Tableau = layout.Tableau
	state.Stock = layout.Stock
	state.Phase = PhasePlaying
	state.Message = e.config.Messages.Welcome
	return state
}
