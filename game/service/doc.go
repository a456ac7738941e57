// Package service provides the business logic layer for Solitario Napoletano.
//
// The service package implements:
//   - Multi-session game management
//   - Gesture processing with input validation
//   - Event extraction from board snapshots
//   - Configuration access
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine. The service serializes
// gestures behind a single lock and compares the board before and after each
// one to report events such as move, flip, draw, recycle, promote and victory.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	origin := engine.PileRef{Kind: engine.Tableau, Index: 3}
//	gameService.SelectCard(ctx, info.ID, "Coppe-Asso", origin)
//	result, err := gameService.Move(ctx, info.ID, service.DestinationFoundation, 0)
//
// Errors:
//
// Unknown sessions and configs wrap ErrSessionNotFound and ErrConfigNotFound.
// Malformed pile indexes and destinations wrap ErrInvalidPile and
// ErrInvalidDestination. A legal request that the rules refuse is not an
// error; it returns an ActionResult with Success false.
package service
