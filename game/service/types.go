package service

import (
	"errors"
	"time"

	"github.com/wricardo/solitario/game/engine"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrConfigNotFound       = errors.New("configuration not found")
	ErrInvalidPile          = errors.New("invalid pile")
	ErrInvalidDestination   = errors.New("invalid destination")
)

// Move destinations accepted by GameService.Move
const (
	DestinationTableau    = "tableau"
	DestinationFoundation = "foundation"
	DestinationEmpty      = "empty"
)

// Event types reported in ActionResult.Events
const (
	EventSelect   = "select"
	EventMove     = "move"
	EventFlip     = "flip"
	EventDraw     = "draw"
	EventRecycle  = "recycle"
	EventPromote  = "promote"
	EventVictory  = "victory"
	EventNewGame  = "new_game"
	EventRejected = "rejected"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ActionResult contains the outcome of a gesture
type ActionResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Cards     int               `json:"cards,omitempty"` // cards promoted by auto-promote/auto-complete
	Events    []GameEvent       `json:"events"`
}

// GameEvent represents something that happened to the board
type GameEvent struct {
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	CardID    string          `json:"card_id,omitempty"`
	From      *engine.PileRef `json:"from,omitempty"`
	To        *engine.PileRef `json:"to,omitempty"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename             string         `json:"filename"`
	ConfigID             string         `json:"config_id"` // The identifier to use for session creation
	Name                 string         `json:"name"`      // Display name
	Description          string         `json:"description"`
	Variant              engine.Variant `json:"variant"`
	AutoPromoteAfterMove bool           `json:"auto_promote_after_move"`
}
