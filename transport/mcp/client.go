package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/solitario/game/engine"
	"github.com/wricardo/solitario/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Solitario Napoletano",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Solitario Napoletano - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Build the four foundations from Asso to Re, one per suit, until all 40 cards are home.

AVAILABLE TOOLS:
- create_session: Deal a new game (optional config_id and seed)
- game_state: Show the board
- legal_moves: List every legal single-card move
- play_card: Select a card and move it in one call
- select_card / move: The same gesture in two steps
- draw: Draw from the stock or recycle the waste (stock_waste variant)
- auto_promote: Move every eligible top card to the foundations once
- auto_complete: Repeat auto_promote until nothing moves
- new_game: Shuffle and deal again in the same session
- list_sessions, get_session, list_configs
- game_instructions: Full rules

NOTE: The 'intent' parameter on play_card and move serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionSchema(extra map[string]interface{}, required ...string) mcp.ToolInputSchema {
	props := map[string]interface{}{
		"session_id": map[string]interface{}{
			"type":        "string",
			"description": "Session ID",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   append([]string{"session_id"}, required...),
	}
}

var (
	cardIDProp = map[string]interface{}{
		"type":        "string",
		"description": "Card ID as shown on the board, e.g. Coppe-Asso or Bastoni-Re",
	}
	originKindProp = map[string]interface{}{
		"type":        "string",
		"enum":        []string{string(engine.Tableau), string(engine.Waste)},
		"description": "Pile the card is taken from",
	}
	originIndexProp = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"maximum":     engine.TableauPiles - 1,
		"description": "Tableau pile index (ignored for waste)",
	}
	destinationProp = map[string]interface{}{
		"type":        "string",
		"enum":        []string{service.DestinationTableau, service.DestinationFoundation, service.DestinationEmpty},
		"description": "tableau: onto a card one rank higher; foundation: next card of the suit; empty: an empty tableau pile",
	}
	indexProp = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"description": "Destination pile index (0-9 for tableau, 0-3 for foundation)",
	}
	intentProp = map[string]interface{}{
		"type":        "string",
		"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
	}
)

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection and seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Config to use, e.g. classic or stock_waste (optional)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for a reproducible deal (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: sessionSchema(nil),
	}, c.handleGetSession)

	// Board
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board",
		InputSchema: sessionSchema(nil),
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_moves",
		Description: "List every legal single-card move on the current board",
		InputSchema: sessionSchema(nil),
	}, c.handleLegalMoves)

	// Gestures
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "select_card",
		Description: "Select a face-up card. Selecting the selected card again deselects it.",
		InputSchema: sessionSchema(map[string]interface{}{
			"card_id":      cardIDProp,
			"origin_kind":  originKindProp,
			"origin_index": originIndexProp,
		}, "card_id", "origin_kind"),
	}, c.handleSelectCard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the selected card",
		InputSchema: sessionSchema(map[string]interface{}{
			"destination": destinationProp,
			"index":       indexProp,
			"intent":      intentProp,
		}, "destination", "index"),
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "play_card",
		Description: "Select a card and move it in one call",
		InputSchema: sessionSchema(map[string]interface{}{
			"card_id":      cardIDProp,
			"origin_kind":  originKindProp,
			"origin_index": originIndexProp,
			"destination":  destinationProp,
			"index":        indexProp,
			"intent":       intentProp,
		}, "card_id", "origin_kind", "destination", "index"),
	}, c.handlePlayCard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "draw",
		Description: "Draw the top stock card onto the waste, or recycle the waste when the stock is empty",
		InputSchema: sessionSchema(nil),
	}, c.gesture("draw", "draw"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "auto_promote",
		Description: "Move every eligible top card to the foundations (one pass)",
		InputSchema: sessionSchema(nil),
	}, c.gesture("auto_promote", "auto-promote"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "auto_complete",
		Description: "Repeat auto_promote until a pass moves nothing",
		InputSchema: sessionSchema(nil),
	}, c.gesture("auto_complete", "auto-complete"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Shuffle and deal a new game in the same session",
		InputSchema: sessionSchema(nil),
	}, c.gesture("new_game", "new-game"))

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete rules of Solitario Napoletano",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// intArg reads a JSON number; ok is false when it is missing or not integral
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}

func sessionPath(sessionID, suffix string) string {
	return fmt.Sprintf("/api/sessions/%s%s", sessionID, suffix)
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]interface{}{}
	if configID := stringArg(args, "config_id"); configID != "" {
		body["config_id"] = configID
	}
	if seed, ok := intArg(args, "seed"); ok {
		body["seed"] = seed
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active sessions: %d\n", response.Count)
	for _, s := range response.Sessions {
		line := fmt.Sprintf("- %s (%s)", s.ID, s.ConfigName)
		if s.GameState != nil {
			line += fmt.Sprintf(" moves=%d foundations=%d/%d", s.GameState.MoveCount, s.GameState.FoundationTotal(), engine.DeckSize)
			if s.GameState.Won {
				line += " WON"
			}
		}
		b.WriteString(line + "\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	var response struct {
		Moves []engine.Move `json:"moves"`
	}
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/legal-moves"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatLegalMoves(response.Moves)), nil
}

func (c *Client) selectCard(ctx context.Context, sessionID string, args map[string]interface{}) (*service.ActionResult, error) {
	cardID := stringArg(args, "card_id")
	if cardID == "" {
		return nil, fmt.Errorf("card_id is required")
	}
	origin := engine.PileRef{Kind: engine.PileKind(stringArg(args, "origin_kind"))}
	origin.Index, _ = intArg(args, "origin_index")

	var result service.ActionResult
	body := map[string]interface{}{"card_id": cardID, "origin": origin}
	err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/select"), body, &result)
	return &result, err
}

func (c *Client) moveSelected(ctx context.Context, sessionID string, args map[string]interface{}) (*service.ActionResult, error) {
	destination := stringArg(args, "destination")
	index, ok := intArg(args, "index")
	if destination == "" || !ok {
		return nil, fmt.Errorf("destination and index are required")
	}

	var result service.ActionResult
	body := map[string]interface{}{"destination": destination, "index": index}
	err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result)
	return &result, err
}

func (c *Client) handleSelectCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	result, err := c.selectCard(ctx, sessionID, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult("select_card", result)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	result, err := c.moveSelected(ctx, sessionID, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult("move", result)), nil
}

func (c *Client) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	selected, err := c.selectCard(ctx, sessionID, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !selected.Success {
		return mcp.NewToolResultText(formatActionResult("play_card", selected)), nil
	}

	result, err := c.moveSelected(ctx, sessionID, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult("play_card", result)), nil
}

// gesture builds a handler for the body-less gesture endpoints
func (c *Client) gesture(tool, endpoint string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID := stringArg(arguments(request), "session_id")
		if sessionID == "" {
			return mcp.NewToolResultError("session_id is required"), nil
		}

		var result service.ActionResult
		if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/"+endpoint), nil, &result); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatActionResult(tool, &result)), nil
	}
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []*service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available configurations:\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "- %s: %s [%s]", cfg.ConfigID, cfg.Name, cfg.Variant)
		if cfg.AutoPromoteAfterMove {
			b.WriteString(" auto-promote")
		}
		if cfg.Description != "" {
			fmt.Fprintf(&b, "\n  %s", cfg.Description)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Solitario Napoletano - Complete Instructions

THE DECK:
40 Neapolitan cards in four suits: Coppe, Spade, Denari, Bastoni.
Ranks from low to high: Asso(1) Due(2) Tre(3) Quattro(4) Cinque(5) Sei(6)
Sette(7) Fante(8) Cavallo(9) Re(10). Card IDs are Suit-Rank, e.g. Denari-Fante.

GAME OBJECTIVE:
Move all 40 cards to the four foundations. Each foundation holds one suit,
built upward from Asso to Re.

VARIANTS:
- classic: all 40 cards dealt to 10 tableau piles of 4; the bottom 3 cards of
  each pile are face-down.
- stock_waste: 10 piles of 3 face-up cards; the remaining 10 cards form a stock.

RULES:
- Only the face-up top card of a tableau pile or of the waste can move.
- Foundation: an empty foundation takes any Asso; otherwise the next rank of
  the same suit.
- Tableau: a card goes onto a card exactly one rank higher, any suit.
  An empty tableau pile takes any card.
- When a move uncovers a face-down card it turns face-up.
- draw moves the top stock card face-up onto the waste. When the stock is
  empty, draw turns the whole waste back into the stock.

GESTURES:
1. select_card picks up a face-up card (select it again to put it down).
2. move sends the selected card to a pile. Every move attempt clears the
   selection, legal or not. play_card does both in one call.
3. auto_promote moves every eligible top card to the foundations once;
   auto_complete repeats it until nothing moves.

STRATEGY:
- Call legal_moves when unsure; it lists every move the rules allow.
- Uncover face-down cards early, they are what blocks a classic deal.
- Free an Asso as soon as possible, then promote.
- Keep an empty tableau pile for a card that blocks a face-down card.

VICTORY CONDITIONS:
The game is won when the foundations hold all 40 cards. After a win only
new_game changes the board.

Buona fortuna!`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func cardLabel(card engine.Card) string {
	if card.FaceDown {
		return "[??]"
	}
	return card.ID
}

func pileLabel(ref engine.PileRef) string {
	switch ref.Kind {
	case engine.Tableau:
		return fmt.Sprintf("T%d", ref.Index)
	case engine.Foundation:
		return fmt.Sprintf("F%d", ref.Index)
	default:
		return string(ref.Kind)
	}
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Variant: %s  Moves: %d  Foundations: %d/%d\n",
		state.Variant, state.MoveCount, state.FoundationTotal(), engine.DeckSize)
	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", state.Message)
	}
	if state.Won {
		b.WriteString("\nVICTORY! All cards are on the foundations.\n")
	}

	b.WriteString("\nFoundations:\n")
	for i, f := range state.Foundations {
		top := "(empty)"
		if len(f) > 0 {
			top = f[len(f)-1].ID
		}
		fmt.Fprintf(&b, "  F%d: %s\n", i, top)
	}

	if state.Variant == engine.StockWaste {
		waste := "(empty)"
		if len(state.Waste) > 0 {
			waste = fmt.Sprintf("%s (%d cards)", state.Waste[len(state.Waste)-1].ID, len(state.Waste))
		}
		fmt.Fprintf(&b, "\nStock: %d cards  Waste: %s\n", len(state.Stock), waste)
	}

	b.WriteString("\nTableau (bottom to top):\n")
	for i, pile := range state.Tableau {
		labels := make([]string, len(pile))
		for j, card := range pile {
			labels[j] = cardLabel(card)
		}
		if len(labels) == 0 {
			labels = []string{"(empty)"}
		}
		fmt.Fprintf(&b, "  T%d: %s\n", i, strings.Join(labels, " "))
	}

	if state.Selection != nil {
		fmt.Fprintf(&b, "\nSelected: %s from %s\n", state.Selection.CardID, pileLabel(state.Selection.Origin))
	}
	return b.String()
}

func formatLegalMoves(moves []engine.Move) string {
	if len(moves) == 0 {
		return "No legal moves. Try draw, or new_game if the stock is exhausted."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Legal moves: %d\n", len(moves))
	for _, m := range moves {
		fmt.Fprintf(&b, "- %s: %s -> %s\n", m.CardID, pileLabel(m.From), pileLabel(m.To))
	}
	return b.String()
}

func formatActionResult(tool string, result *service.ActionResult) string {
	var b strings.Builder
	status := "OK"
	if !result.Success {
		status = "REJECTED"
	}
	fmt.Fprintf(&b, "%s: %s", tool, status)
	if result.Message != "" {
		fmt.Fprintf(&b, " - %s", result.Message)
	}
	b.WriteString("\n")

	for _, ev := range result.Events {
		line := "  * " + ev.Type
		if ev.CardID != "" {
			line += " " + ev.CardID
		}
		if ev.From != nil && ev.To != nil {
			line += fmt.Sprintf(" %s -> %s", pileLabel(*ev.From), pileLabel(*ev.To))
		} else if ev.To != nil {
			line += " at " + pileLabel(*ev.To)
		} else if ev.From != nil {
			line += " at " + pileLabel(*ev.From)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}
