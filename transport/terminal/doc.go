// Package terminal plays a Solitario session at a text prompt.
//
// The board is drawn with pterm tables, one colour per suit, face-down cards
// as "##" and the selected card wrapped in >7C<. Gestures are short commands:
//
//	s 7c [t3|w]   select Coppe-Sette, optionally naming its pile
//	t 4           move the selection onto tableau 4
//	f 0           move the selection onto foundation 0
//	e 9           move the selection onto the empty tableau 9
//	d a c n       draw, auto-promote, auto-complete, new game
//	m h q         legal moves, help, quit
//
// Every command goes through service.GameService, so the same rules and
// messages apply as over REST or MCP.
package terminal
