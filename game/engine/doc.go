// Package engine provides the core game logic for Solitario Napoletano.
//
// The engine package implements the game mechanics including:
//   - Construction and Fisher-Yates shuffling of the 40-card Neapolitan deck
//   - Row-major dealing for the classic and stock/waste variants
//   - Move legality for tableau and foundation targets
//   - Automatic foundation promotion and stock/waste cycling
//   - Move counting and win detection
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState represents the board, while GameConfig
// selects the variant and carries the player-facing messages.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig(engine.Classic))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Pick up a card and drop it on a foundation
//	gameEngine.SelectCard("Coppe-Asso", engine.PileRef{Kind: engine.Tableau, Index: 3})
//	moved := gameEngine.MoveToFoundation(0)
//	state := gameEngine.GetState()
//
// Game Rules:
//
// Cards move one at a time from the top of a tableau pile (or the waste) and
// never while face-down. A tableau pile accepts any card when empty, otherwise
// a card exactly one rank lower regardless of suit. Foundations are built up
// by suit from Asso to Re. Exposing a face-down tableau card flips it. The game
// is won when all 40 cards are on the foundations.
package engine
