package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"github.com/wricardo/solitario/game/config"
	"github.com/wricardo/solitario/game/engine"
	"github.com/wricardo/solitario/game/service"
	"github.com/wricardo/solitario/game/session"
	"github.com/wricardo/solitario/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, configName string, seed *int64) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Gestures
	NewGameFunc       func(ctx context.Context, sessionID string) (*service.ActionResult, error)
	SelectCardFunc    func(ctx context.Context, sessionID, cardID string, origin engine.PileRef) (*service.ActionResult, error)
	MoveFunc          func(ctx context.Context, sessionID, destination string, index int) (*service.ActionResult, error)
	DrawFromStockFunc func(ctx context.Context, sessionID string) (*service.ActionResult, error)
	AutoPromoteFunc   func(ctx context.Context, sessionID string) (*service.ActionResult, error)
	AutoCompleteFunc  func(ctx context.Context, sessionID string) (*service.ActionResult, error)

	// Game State
	GetGameStateFunc  func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetLegalMovesFunc func(ctx context.Context, sessionID string) ([]engine.Move, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfigFunc  func(ctx context.Context, configName string, config *engine.GameConfig) error
}

func sampleState() *engine.GameState {
	return engine.NewEngineWithDefaults(engine.WithSeed(3)).GetState()
}

func okResult() *service.ActionResult {
	return &service.ActionResult{Success: true, GameState: sampleState(), Message: "ok"}
}

// Session Management
func (m *MockGameService) CreateSession(ctx context.Context, configName string, seed *int64) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName, seed)
	}
	return &service.SessionInfo{
		ID:         "ab12",
		ConfigName: configName,
		CreatedAt:  time.Now(),
		GameState:  sampleState(),
	}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{
		ID:         sessionID,
		ConfigName: "classic",
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

// Gestures
func (m *MockGameService) NewGame(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	if m.NewGameFunc != nil {
		return m.NewGameFunc(ctx, sessionID)
	}
	return okResult(), nil
}

func (m *MockGameService) SelectCard(ctx context.Context, sessionID, cardID string, origin engine.PileRef) (*service.ActionResult, error) {
	if m.SelectCardFunc != nil {
		return m.SelectCardFunc(ctx, sessionID, cardID, origin)
	}
	return okResult(), nil
}

func (m *MockGameService) Move(ctx context.Context, sessionID, destination string, index int) (*service.ActionResult, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, sessionID, destination, index)
	}
	return okResult(), nil
}

func (m *MockGameService) DrawFromStock(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	if m.DrawFromStockFunc != nil {
		return m.DrawFromStockFunc(ctx, sessionID)
	}
	return okResult(), nil
}

func (m *MockGameService) AutoPromote(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	if m.AutoPromoteFunc != nil {
		return m.AutoPromoteFunc(ctx, sessionID)
	}
	return okResult(), nil
}

func (m *MockGameService) AutoComplete(ctx context.Context, sessionID string) (*service.ActionResult, error) {
	if m.AutoCompleteFunc != nil {
		return m.AutoCompleteFunc(ctx, sessionID)
	}
	return okResult(), nil
}

// Game State
func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return sampleState(), nil
}

func (m *MockGameService) GetLegalMoves(ctx context.Context, sessionID string) ([]engine.Move, error) {
	if m.GetLegalMovesFunc != nil {
		return m.GetLegalMovesFunc(ctx, sessionID)
	}
	return nil, nil
}

// Configuration
func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return engine.DefaultGameConfig(engine.Classic), nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

// Test helpers
func setupTestServer(t *testing.T, mockService service.GameService) *Server {
	t.Helper()
	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return NewServer(mockService, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

func do(server http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest(method, path, body))
	return w
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "default config without body",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, seed *int64) (*service.SessionInfo, error) {
					if configName != "" || seed != nil {
						t.Errorf("Expected empty config and nil seed, got %q %v", configName, seed)
					}
					return &service.SessionInfo{ID: "ab12", ConfigName: "classic", CreatedAt: time.Now()}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "ab12" {
					t.Errorf("Expected session ID ab12, got %s", resp.ID)
				}
			},
		},
		{
			name:        "config and seed",
			requestBody: map[string]interface{}{"config_id": "stock_waste", "seed": 42},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, seed *int64) (*service.SessionInfo, error) {
					if configName != "stock_waste" {
						t.Errorf("Expected config 'stock_waste', got %s", configName)
					}
					if seed == nil || *seed != 42 {
						t.Errorf("Expected seed 42, got %v", seed)
					}
					return &service.SessionInfo{ID: "cd34", ConfigName: configName, GameState: sampleState()}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ConfigName != "stock_waste" || resp.GameState == nil {
					t.Errorf("Unexpected response %+v", resp)
				}
			},
		},
		{
			name:           "malformed body",
			requestBody:    "not an object",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "unknown config",
			requestBody: map[string]string{"config_id": "spider"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, seed *int64) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("%w: 'spider'", service.ErrConfigNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "service error",
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, seed *int64) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "service error" {
					t.Errorf("Expected error message 'service error', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			w := do(setupTestServer(t, mockService), "POST", "/api/sessions", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	mockService := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "aaaa", CreatedAt: now.Add(-3 * time.Hour), LastAccessedAt: now.Add(-1 * time.Minute)},
				{ID: "bbbb", CreatedAt: now.Add(-1 * time.Hour), LastAccessedAt: now.Add(-2 * time.Hour)},
				{ID: "cccc", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-1 * time.Hour)},
			}, nil
		},
	}
	server := setupTestServer(t, mockService)

	tests := []struct {
		query    string
		expected []string
		total    int
	}{
		{"", []string{"aaaa", "cccc", "bbbb"}, 3},
		{"?sort=created", []string{"bbbb", "cccc", "aaaa"}, 3},
		{"?sort=created&order=asc", []string{"aaaa", "cccc", "bbbb"}, 3},
		{"?limit=2", []string{"aaaa", "cccc"}, 3},
		{"?limit=abc", []string{"aaaa", "cccc", "bbbb"}, 3},
	}

	for _, tt := range tests {
		t.Run("query"+tt.query, func(t *testing.T) {
			w := do(server, "GET", "/api/sessions"+tt.query, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var resp struct {
				Count    int                    `json:"count"`
				Total    int                    `json:"total"`
				Sessions []*service.SessionInfo `json:"sessions"`
			}
			parseResponse(t, w, &resp)

			if resp.Count != len(tt.expected) || resp.Total != tt.total {
				t.Errorf("Expected count=%d total=%d, got count=%d total=%d", len(tt.expected), tt.total, resp.Count, resp.Total)
			}
			for i, id := range tt.expected {
				if i >= len(resp.Sessions) || resp.Sessions[i].ID != id {
					t.Errorf("Position %d: expected %s, got %+v", i, id, resp.Sessions)
					break
				}
			}
		})
	}
}

func TestGetAndDeleteSession(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			if sessionID == "ab12" {
				return &service.SessionInfo{ID: sessionID, ConfigName: "classic"}, nil
			}
			return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, sessionID)
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			if sessionID == "ab12" {
				return nil
			}
			return fmt.Errorf("%w: %s", service.ErrSessionNotFound, sessionID)
		},
	}
	server := setupTestServer(t, mockService)

	if w := do(server, "GET", "/api/sessions/ab12", nil); w.Code != http.StatusOK {
		t.Errorf("GET existing: expected 200, got %d", w.Code)
	}
	if w := do(server, "GET", "/api/sessions/zzzz", nil); w.Code != http.StatusNotFound {
		t.Errorf("GET missing: expected 404, got %d", w.Code)
	}

	w := do(server, "DELETE", "/api/sessions/ab12", nil)
	if w.Code != http.StatusOK {
		t.Errorf("DELETE existing: expected 200, got %d", w.Code)
	}
	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["message"] != "Session ab12 deleted" {
		t.Errorf("Unexpected delete message %q", resp["message"])
	}

	if w := do(server, "DELETE", "/api/sessions/zzzz", nil); w.Code != http.StatusNotFound {
		t.Errorf("DELETE missing: expected 404, got %d", w.Code)
	}
}

// Board Tests

func TestGetGameState(t *testing.T) {
	state := sampleState()
	mockService := &MockGameService{
		GetGameStateFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			if sessionID != "ab12" {
				return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, sessionID)
			}
			return state, nil
		},
	}
	server := setupTestServer(t, mockService)

	w := do(server, "GET", "/api/sessions/ab12/state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var got engine.GameState
	parseResponse(t, w, &got)
	if got.DealID != state.DealID || got.CountCards() != engine.DeckSize {
		t.Errorf("Unexpected state: deal %s, %d cards", got.DealID, got.CountCards())
	}

	if w := do(server, "GET", "/api/sessions/zzzz/state", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing session, got %d", w.Code)
	}
}

func TestLegalMoves(t *testing.T) {
	mockService := &MockGameService{
		GetLegalMovesFunc: func(ctx context.Context, sessionID string) ([]engine.Move, error) {
			return []engine.Move{{
				CardID: "Coppe-Asso",
				From:   engine.PileRef{Kind: engine.Tableau, Index: 2},
				To:     engine.PileRef{Kind: engine.Foundation, Index: 0},
			}}, nil
		},
	}

	w := do(setupTestServer(t, mockService), "GET", "/api/sessions/ab12/legal-moves", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp struct {
		Count int           `json:"count"`
		Moves []engine.Move `json:"moves"`
	}
	parseResponse(t, w, &resp)
	if resp.Count != 1 || resp.Moves[0].To.Kind != engine.Foundation {
		t.Errorf("Unexpected legal moves %+v", resp)
	}
}

// Gesture Tests

func TestSelect(t *testing.T) {
	var gotCard string
	var gotOrigin engine.PileRef
	mockService := &MockGameService{
		SelectCardFunc: func(ctx context.Context, sessionID, cardID string, origin engine.PileRef) (*service.ActionResult, error) {
			gotCard, gotOrigin = cardID, origin
			if origin.Kind == engine.Foundation {
				return nil, fmt.Errorf("%w: foundation", service.ErrInvalidPile)
			}
			return okResult(), nil
		},
	}
	server := setupTestServer(t, mockService)

	body := map[string]interface{}{
		"card_id": "Spade-Re",
		"origin":  map[string]interface{}{"kind": "tableau", "index": 4},
	}
	if w := do(server, "POST", "/api/sessions/ab12/select", body); w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if gotCard != "Spade-Re" || gotOrigin != (engine.PileRef{Kind: engine.Tableau, Index: 4}) {
		t.Errorf("Unexpected select arguments %s %+v", gotCard, gotOrigin)
	}

	body["origin"] = map[string]interface{}{"kind": "foundation", "index": 0}
	if w := do(server, "POST", "/api/sessions/ab12/select", body); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for foundation origin, got %d", w.Code)
	}

	if w := do(server, "POST", "/api/sessions/ab12/select", map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without card_id, got %d", w.Code)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		result         *service.ActionResult
		err            error
		expectedStatus int
		expectedDest   string
		expectedIndex  int
	}{
		{
			name:           "tableau move",
			body:           map[string]interface{}{"destination": "tableau", "index": 3},
			result:         okResult(),
			expectedStatus: http.StatusOK,
			expectedDest:   "tableau",
			expectedIndex:  3,
		},
		{
			name:           "destination is case-insensitive",
			body:           map[string]interface{}{"destination": "Foundation", "index": 1},
			result:         okResult(),
			expectedStatus: http.StatusOK,
			expectedDest:   "foundation",
			expectedIndex:  1,
		},
		{
			name:           "rejected move is still 200",
			body:           map[string]interface{}{"destination": "tableau", "index": 0},
			result:         &service.ActionResult{Success: false, GameState: sampleState(), Message: "Mossa non valida"},
			expectedStatus: http.StatusOK,
			expectedDest:   "tableau",
		},
		{
			name:           "bad destination",
			body:           map[string]interface{}{"destination": "stock", "index": 0},
			err:            fmt.Errorf("%w: \"stock\"", service.ErrInvalidDestination),
			expectedStatus: http.StatusBadRequest,
			expectedDest:   "stock",
		},
		{
			name:           "index out of range",
			body:           map[string]interface{}{"destination": "foundation", "index": 9},
			err:            fmt.Errorf("%w: foundation index 9", service.ErrInvalidPile),
			expectedStatus: http.StatusBadRequest,
			expectedDest:   "foundation",
			expectedIndex:  9,
		},
		{
			name:           "malformed body",
			body:           "[",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mockService := &MockGameService{
				MoveFunc: func(ctx context.Context, sessionID, destination string, index int) (*service.ActionResult, error) {
					called = true
					if destination != tt.expectedDest || index != tt.expectedIndex {
						t.Errorf("Expected %s/%d, got %s/%d", tt.expectedDest, tt.expectedIndex, destination, index)
					}
					return tt.result, tt.err
				},
			}

			w := do(setupTestServer(t, mockService), "POST", "/api/sessions/ab12/move", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.result != nil {
				var resp service.ActionResult
				parseResponse(t, w, &resp)
				if resp.Success != tt.result.Success || resp.Message != tt.result.Message {
					t.Errorf("Unexpected result %+v", resp)
				}
			}
			if tt.expectedDest == "" && called {
				t.Error("Service should not be called for a malformed body")
			}
		})
	}
}

func TestBodylessGestures(t *testing.T) {
	calls := map[string]int{}
	count := func(name string) (*service.ActionResult, error) {
		calls[name]++
		return okResult(), nil
	}
	mockService := &MockGameService{
		NewGameFunc: func(ctx context.Context, sessionID string) (*service.ActionResult, error) {
			return count("new-game")
		},
		DrawFromStockFunc: func(ctx context.Context, sessionID string) (*service.ActionResult, error) {
			return count("draw")
		},
		AutoPromoteFunc: func(ctx context.Context, sessionID string) (*service.ActionResult, error) {
			return count("auto-promote")
		},
		AutoCompleteFunc: func(ctx context.Context, sessionID string) (*service.ActionResult, error) {
			return count("auto-complete")
		},
	}
	server := setupTestServer(t, mockService)

	for _, path := range []string{"new-game", "draw", "auto-promote", "auto-complete"} {
		w := do(server, "POST", "/api/sessions/ab12/"+path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, w.Code)
		}
		if calls[path] != 1 {
			t.Errorf("%s: expected one service call, got %d", path, calls[path])
		}
	}

	if w := do(server, "GET", "/api/sessions/ab12/draw", nil); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on a gesture: expected 405, got %d", w.Code)
	}
}

func TestGestureMissingSession(t *testing.T) {
	notFound := func(ctx context.Context, sessionID string) (*service.ActionResult, error) {
		return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, sessionID)
	}
	mockService := &MockGameService{DrawFromStockFunc: notFound}

	w := do(setupTestServer(t, mockService), "POST", "/api/sessions/zzzz/draw", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	var resp map[string]string
	parseResponse(t, w, &resp)
	if !strings.Contains(resp["error"], "zzzz") {
		t.Errorf("Expected error to name the session, got %q", resp["error"])
	}
}

// Configuration Tests

func TestListConfigs(t *testing.T) {
	mockService := &MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{
				{ConfigID: "classic", Filename: "classic.json", Variant: engine.Classic},
				{ConfigID: "stock_waste", Filename: "stock_waste.json", Variant: engine.StockWaste},
			}, nil
		},
	}

	w := do(setupTestServer(t, mockService), "GET", "/api/configs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var configs []*service.ConfigInfo
	parseResponse(t, w, &configs)
	if len(configs) != 2 || configs[1].Variant != engine.StockWaste {
		t.Errorf("Unexpected configs %+v", configs)
	}
}

func TestGetConfig(t *testing.T) {
	mockService := &MockGameService{
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.GameConfig, error) {
			if configName == "classic" {
				return engine.DefaultGameConfig(engine.Classic), nil
			}
			return nil, fmt.Errorf("%w: %s", service.ErrConfigNotFound, configName)
		},
	}
	server := setupTestServer(t, mockService)

	for _, path := range []string{"/api/configs/classic", "/api/configs/classic.json"} {
		if w := do(server, "GET", path, nil); w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
	}
	if w := do(server, "GET", "/api/configs/spider", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestCreateConfig(t *testing.T) {
	var saved *engine.GameConfig
	var savedID string
	mockService := &MockGameService{
		SaveConfigFunc: func(ctx context.Context, configName string, cfg *engine.GameConfig) error {
			if cfg.Name == "" {
				return fmt.Errorf("%w: name is required", config.ErrInvalidConfig)
			}
			savedID, saved = configName, cfg
			return nil
		},
	}
	server := setupTestServer(t, mockService)

	body := map[string]interface{}{
		"config_id":               "veloce",
		"name":                    "Veloce",
		"description":             "Promozione automatica",
		"variant":                 "classic",
		"auto_promote_after_move": true,
	}
	w := do(server, "POST", "/api/configs", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if savedID != "veloce" || saved == nil || !saved.AutoPromoteAfterMove {
		t.Fatalf("Unexpected saved config %s %+v", savedID, saved)
	}
	if saved.Messages != engine.DefaultMessages() {
		t.Error("Missing messages should default to the built-in ones")
	}

	delete(body, "config_id")
	if w := do(server, "POST", "/api/configs", body); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without config_id, got %d", w.Code)
	}

	body["config_id"] = "vuoto"
	body["name"] = ""
	if w := do(server, "POST", "/api/configs", body); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an invalid config, got %d", w.Code)
	}
}

// Infrastructure Tests

func TestHealth(t *testing.T) {
	w := do(setupTestServer(t, &MockGameService{}), "GET", "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("Unexpected health response %v", resp)
	}
}

func TestHandlerCORSAndAccessLog(t *testing.T) {
	server := setupTestServer(t, &MockGameService{})
	var accessLog bytes.Buffer
	h := server.handler([]string{"http://tavolo.example"}, &accessLog)

	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("Origin", "http://tavolo.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://tavolo.example" {
		t.Errorf("Expected allowed origin header, got %q", got)
	}
	if !strings.Contains(accessLog.String(), "/api/health") {
		t.Errorf("Expected access log line, got %q", accessLog.String())
	}
}

func TestWebSocket(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		expectedStatus int
	}{
		{"missing session parameter", "", http.StatusBadRequest},
		{"invalid session", "?session=zzzz", http.StatusNotFound},
	}

	mockService := &MockGameService{
		GetGameStateFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, sessionID)
		},
	}
	server := setupTestServer(t, mockService)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, httptest.NewRequest("GET", "/ws"+tt.queryParams, nil))
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

// Session IDs are case-insensitive, so a watcher subscribed with any case
// receives the gestures posted under another
func TestWebSocket_SessionIDCase(t *testing.T) {
	configs, err := config.NewManager(filepath.Join("..", "configs"))
	if err != nil {
		t.Fatalf("Failed to load configs: %v", err)
	}
	gameService := service.NewGameService(session.NewManager(), configs)
	ts := httptest.NewServer(setupTestServer(t, gameService))
	defer ts.Close()

	info, err := gameService.CreateSession(context.Background(), "stock_waste", nil)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + strings.ToUpper(info.ID)
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	read := func() websocket.Message {
		t.Helper()
		var msg websocket.Message
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON failed: %v", err)
		}
		return msg
	}

	if msg := read(); msg.Event != websocket.EventSnapshot {
		t.Fatalf("Expected snapshot first, got %q", msg.Event)
	}

	resp, err := http.Post(ts.URL+"/api/sessions/"+strings.ToLower(info.ID)+"/draw", "application/json", nil)
	if err != nil {
		t.Fatalf("POST draw: %v", err)
	}
	resp.Body.Close()

	msg := read()
	if msg.Event != websocket.EventStateUpdate {
		t.Fatalf("Expected state_update, got %q", msg.Event)
	}
	if msg.SessionID != strings.ToLower(info.ID) {
		t.Errorf("Expected session %s, got %s", strings.ToLower(info.ID), msg.SessionID)
	}
	if msg.GameState == nil || len(msg.GameState.Waste) != 1 {
		t.Errorf("Expected the drawn card in the pushed state, got %+v", msg.GameState)
	}
}

// An end-to-end game over HTTP against the real service and shipped configs
func TestIntegration_SeededGame(t *testing.T) {
	configs, err := config.NewManager(filepath.Join("..", "configs"))
	if err != nil {
		t.Fatalf("Failed to load configs: %v", err)
	}
	gameService := service.NewGameService(session.NewManager(), configs)
	ts := httptest.NewServer(setupTestServer(t, gameService))
	defer ts.Close()

	post := func(path string, body interface{}, target interface{}) int {
		t.Helper()
		data, _ := json.Marshal(body)
		resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		if target != nil {
			if err := json.Unmarshal(raw, target); err != nil {
				t.Fatalf("POST %s: bad JSON %s", path, raw)
			}
		}
		return resp.StatusCode
	}

	var created service.SessionInfo
	if status := post("/api/sessions", map[string]interface{}{"config_id": "stock_waste", "seed": 11}, &created); status != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", status)
	}
	if created.GameState.Variant != engine.StockWaste || len(created.GameState.Stock) != engine.DeckSize-engine.TableauPiles*engine.StockWasteRows {
		t.Fatalf("Unexpected stock/waste deal %+v", created.GameState)
	}

	var drawn service.ActionResult
	post("/api/sessions/"+created.ID+"/draw", nil, &drawn)
	if !drawn.Success || len(drawn.GameState.Waste) != 1 {
		t.Fatalf("Expected one card in the waste, got %+v", drawn)
	}

	var moves struct {
		Moves []engine.Move `json:"moves"`
	}
	resp, err := http.Get(ts.URL + "/api/sessions/" + created.ID + "/legal-moves")
	if err != nil {
		t.Fatalf("GET legal-moves: %v", err)
	}
	json.NewDecoder(resp.Body).Decode(&moves)
	resp.Body.Close()

	// Play one legal move through select + move
	if len(moves.Moves) > 0 {
		m := moves.Moves[0]
		var selected service.ActionResult
		post("/api/sessions/"+created.ID+"/select", map[string]interface{}{"card_id": m.CardID, "origin": m.From}, &selected)
		if !selected.Success {
			t.Fatalf("Select of a legal move's card failed: %+v", selected)
		}

		destination := service.DestinationTableau
		if m.To.Kind == engine.Foundation {
			destination = service.DestinationFoundation
		} else if len(selected.GameState.Tableau[m.To.Index]) == 0 {
			destination = service.DestinationEmpty
		}
		var moved service.ActionResult
		post("/api/sessions/"+created.ID+"/move", map[string]interface{}{"destination": destination, "index": m.To.Index}, &moved)
		if !moved.Success {
			t.Fatalf("Legal move %+v was rejected: %s", m, moved.Message)
		}
		if moved.GameState.CountCards() != engine.DeckSize {
			t.Errorf("Cards not conserved: %d", moved.GameState.CountCards())
		}
	}

	if status := post("/api/sessions/"+created.ID+"/move", map[string]interface{}{"destination": "nowhere"}, nil); status != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad destination, got %d", status)
	}
}
