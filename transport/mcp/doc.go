// Package mcp exposes Solitario Napoletano to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request against
// the api package, and the answer is rendered as a text board.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state: board with foundations, stock, waste and tableau
//   - legal_moves: every legal single-card move
//   - select_card, move, play_card: the select-then-move gesture
//   - draw, auto_promote, auto_complete, new_game
//   - list_configs, game_instructions
//
// Face-down cards render as [??]. Tableau piles are listed bottom to top, so
// the last card on a line is the one that can move.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
