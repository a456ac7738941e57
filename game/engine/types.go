package engine

// Suit is one of the four Neapolitan suits
type Suit string

const (
	Coppe   Suit = "Coppe"
	Spade   Suit = "Spade"
	Denari  Suit = "Denari"
	Bastoni Suit = "Bastoni"
)

// Rank is one of the ten Neapolitan ranks, Asso (1) to Re (10)
type Rank string

const (
	Asso    Rank = "Asso"
	Due     Rank = "Due"
	Tre     Rank = "Tre"
	Quattro Rank = "Quattro"
	Cinque  Rank = "Cinque"
	Sei     Rank = "Sei"
	Sette   Rank = "Sette"
	Fante   Rank = "Fante"
	Cavallo Rank = "Cavallo"
	Re      Rank = "Re"
)

// Suits lists the suits in deck construction order
var Suits = []Suit{Coppe, Spade, Denari, Bastoni}

// Ranks lists the ranks in ascending value order
var Ranks = []Rank{Asso, Due, Tre, Quattro, Cinque, Sei, Sette, Fante, Cavallo, Re}

const (
	// Layout constants
	DeckSize        = 40
	TableauPiles    = 10
	FoundationPiles = 4
	ClassicRows     = 4
	ClassicHidden   = 3
	StockWasteRows  = 3

	// Maximum auto-promote passes for a single auto-complete call.
	// A pass moves at least one card, so DeckSize passes always suffice.
	MaxAutoCompletePasses = DeckSize
)

// Variant selects dealing and stock behavior
type Variant string

const (
	// Classic deals all 40 cards to the tableau, three rows face-down
	Classic Variant = "classic"
	// StockWaste deals 30 face-up cards and keeps 10 in a stock pile
	StockWaste Variant = "stock_waste"
)

// Valid reports whether v is a known variant
func (v Variant) Valid() bool {
	return v == Classic || v == StockWaste
}

// Phase is the state machine phase
type Phase string

const (
	PhaseDealing Phase = "dealing"
	PhasePlaying Phase = "playing"
	PhaseWon     Phase = "won"
)

// PileKind identifies a group of piles on the board
type PileKind string

const (
	Tableau    PileKind = "tableau"
	Foundation PileKind = "foundation"
	Stock      PileKind = "stock"
	Waste      PileKind = "waste"
)

// Card is a single Neapolitan card. Only FaceDown ever changes.
type Card struct {
	Suit     Suit   `json:"suit"`
	Rank     Rank   `json:"rank"`
	Value    int    `json:"value"`
	ID       string `json:"id"`
	FaceDown bool   `json:"face_down"`
}

// PileRef addresses one pile. Index is ignored for stock and waste.
type PileRef struct {
	Kind  PileKind `json:"kind"`
	Index int      `json:"index"`
}

// Selection is the card currently picked up by the player
type Selection struct {
	CardID string  `json:"card_id"`
	Origin PileRef `json:"origin"`
}

// GameState is the complete board. Snapshots returned by the engine are deep copies.
type GameState struct {
	DealID      string     `json:"deal_id"`
	ConfigName  string     `json:"config_name"`
	Variant     Variant    `json:"variant"`
	Phase       Phase      `json:"phase"`
	Tableau     [][]Card   `json:"tableau"`
	Foundations [][]Card   `json:"foundations"`
	Stock       []Card     `json:"stock"`
	Waste       []Card     `json:"waste"`
	Selection   *Selection `json:"selection,omitempty"`
	MoveCount   int        `json:"move_count"`
	Won         bool       `json:"won"`
	Message     string     `json:"message"`
}

// Messages holds the player-facing message templates for a configuration
type Messages struct {
	Welcome          string `json:"welcome"`
	Victory          string `json:"victory"`
	InvalidMove      string `json:"invalid_move"`
	NoSelection      string `json:"no_selection"`
	Drawn            string `json:"drawn"`
	Recycled         string `json:"recycled"`
	Promoted         string `json:"promoted"`
	NothingToPromote string `json:"nothing_to_promote"`
}

// GameConfig represents a game configuration loaded from JSON
type GameConfig struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Variant              Variant  `json:"variant"`
	AutoPromoteAfterMove bool     `json:"auto_promote_after_move"`
	Messages             Messages `json:"messages"`
}
