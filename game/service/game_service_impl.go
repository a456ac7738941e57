package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/wricardo/solitario/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session. A non-nil seed makes the deals reproducible.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, seed *int64) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	var opts []engine.Option
	if seed != nil {
		opts = append(opts, engine.WithSeed(*seed))
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information. It takes the write lock: the
// access time it reports is written by every session lookup.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions, oldest first. Like GetSession it
// reads access times, so it excludes lookups running under the read lock.
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return nil
}

// NewGame deals a fresh game in an existing session
func (s *gameServiceImpl) NewGame(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(ctx, sessionID, EventNewGame, func(e *engine.GameEngine) (bool, int) {
		e.NewGame()
		return true, 0
	})
}

// SelectCard selects or deselects a card in a tableau pile or the waste
func (s *gameServiceImpl) SelectCard(ctx context.Context, sessionID, cardID string, origin engine.PileRef) (*ActionResult, error) {
	switch origin.Kind {
	case engine.Tableau:
		if origin.Index < 0 || origin.Index >= engine.TableauPiles {
			return nil, fmt.Errorf("%w: tableau index %d out of range 0-%d", ErrInvalidPile, origin.Index, engine.TableauPiles-1)
		}
	case engine.Waste:
		origin.Index = 0
	default:
		return nil, fmt.Errorf("%w: cards can only be selected from tableau or waste, got %q", ErrInvalidPile, origin.Kind)
	}

	return s.act(ctx, sessionID, EventSelect, func(e *engine.GameEngine) (bool, int) {
		return e.SelectCard(cardID, origin), 0
	})
}

// Move moves the selected card to a tableau pile, a foundation or an empty tableau pile
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, destination string, index int) (*ActionResult, error) {
	var gesture func(e *engine.GameEngine) bool
	limit := engine.TableauPiles

	switch destination {
	case DestinationTableau:
		gesture = func(e *engine.GameEngine) bool { return e.MoveToTableau(index) }
	case DestinationEmpty:
		gesture = func(e *engine.GameEngine) bool { return e.MoveToEmptyPile(index) }
	case DestinationFoundation:
		limit = engine.FoundationPiles
		gesture = func(e *engine.GameEngine) bool { return e.MoveToFoundation(index) }
	default:
		return nil, fmt.Errorf("%w: %q (use %s, %s or %s)", ErrInvalidDestination, destination,
			DestinationTableau, DestinationFoundation, DestinationEmpty)
	}
	if index < 0 || index >= limit {
		return nil, fmt.Errorf("%w: %s index %d out of range 0-%d", ErrInvalidPile, destination, index, limit-1)
	}

	return s.act(ctx, sessionID, EventMove, func(e *engine.GameEngine) (bool, int) {
		return gesture(e), 0
	})
}

// DrawFromStock draws a card or recycles the waste
func (s *gameServiceImpl) DrawFromStock(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(ctx, sessionID, EventDraw, func(e *engine.GameEngine) (bool, int) {
		return e.DrawFromStock(), 0
	})
}

// AutoPromote runs a single promotion pass
func (s *gameServiceImpl) AutoPromote(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(ctx, sessionID, EventPromote, func(e *engine.GameEngine) (bool, int) {
		n := e.AutoPromote()
		return n > 0, n
	})
}

// AutoComplete promotes until nothing moves
func (s *gameServiceImpl) AutoComplete(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(ctx, sessionID, EventPromote, func(e *engine.GameEngine) (bool, int) {
		n := e.AutoComplete()
		return n > 0, n
	})
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// GetLegalMoves lists the legal single-card moves of a session
func (s *gameServiceImpl) GetLegalMoves(ctx context.Context, sessionID string) ([]engine.Move, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	moves := sess.Engine.GetLegalMoves()
	if moves == nil {
		moves = []engine.Move{}
	}
	return moves, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// act runs one gesture against a session and derives its events from the
// before and after snapshots
func (s *gameServiceImpl) act(ctx context.Context, sessionID, action string, gesture func(e *engine.GameEngine) (bool, int)) (*ActionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	prev := sess.Engine.GetState()
	ok, cards := gesture(sess.Engine)
	state := sess.Engine.GetState()

	return &ActionResult{
		Success:   ok,
		GameState: state,
		Message:   state.Message,
		Cards:     cards,
		Events:    extractEvents(action, prev, state, ok),
	}, nil
}

// getSession looks a session up and refreshes its access time. Only
// sessionInfo reads the access time back, and it runs under the write lock.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}
