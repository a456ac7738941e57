// Package api provides the HTTP REST API for Solitario Napoletano.
//
// The api package implements:
//   - Session management endpoints
//   - One endpoint per player gesture
//   - Configuration listing, lookup and creation
//   - WebSocket upgrade for live board updates
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session {config_id?, seed?}
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Board:
//   - GET /api/sessions/{id}/state - Current board snapshot
//   - GET /api/sessions/{id}/legal-moves - Every legal single-card move
//
// Gestures:
//   - POST /api/sessions/{id}/new-game - Shuffle and deal again
//   - POST /api/sessions/{id}/select - {card_id, origin{kind, index}}
//   - POST /api/sessions/{id}/move - {destination: tableau|foundation|empty, index}
//   - POST /api/sessions/{id}/draw - Draw from the stock or recycle the waste
//   - POST /api/sessions/{id}/auto-promote - One promotion pass
//   - POST /api/sessions/{id}/auto-complete - Promote until nothing moves
//
// Configuration:
//   - GET /api/configs - List configurations
//   - GET /api/configs/{name} - Get a configuration
//   - POST /api/configs - Save {config_id, name, description, variant, ...}
//
// Other:
//   - GET /api/health
//   - GET /ws?session={id}
//
// A gesture the rules refuse still answers 200 with success false and the
// unchanged board. Unknown sessions and configs answer 404, malformed piles
// and destinations 400. Errors are JSON:
//
//	{"error": "session not found: zz99"}
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server.Handler(settings.CORSOrigins))
package api
