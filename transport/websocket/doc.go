// Package websocket pushes Solitario board snapshots to watching clients.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - A snapshot on connect, then one update per successful gesture
//   - Origin checks from the configured allow list
//   - Connection lifecycle management
//
// Architecture:
//
// A central Hub owns every connection. Registration, removal and broadcast
// all run on the Hub's Run goroutine, so the session map is never touched
// concurrently. Each client has a read goroutine that only answers pings and
// a write goroutine that drains its send buffer.
//
// Message Protocol:
//
// Outgoing messages are JSON with session_id, event and, for board changes,
// game_state plus the events that produced it:
//
//	{"session_id":"ab12","event":"state_update","game_state":{...},"events":[...]}
//
// Gestures are not accepted over the socket; clients use the REST API.
//
// Usage:
//
//	hub := websocket.NewHub(settings.CORSOrigins...)
//	go hub.Run(ctx)
//
//	hub.ServeWS(w, r, sessionID, state)
//	hub.BroadcastState(sessionID, result.GameState, result.Events)
package websocket
