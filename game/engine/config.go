package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config cannot be nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if !config.Variant.Valid() {
		return fmt.Errorf("config validation: variant must be %q or %q, got %q", Classic, StockWaste, config.Variant)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if !oneCountVerb(config.Messages.Victory) {
		return fmt.Errorf("config validation: messages.victory must contain exactly one %%d for the move count and no other verb (write %%%% for a percent sign)")
	}
	if !oneCountVerb(config.Messages.Promoted) {
		return fmt.Errorf("config validation: messages.promoted must contain exactly one %%d for the card count and no other verb (write %%%% for a percent sign)")
	}
	if config.Messages.InvalidMove == "" {
		return fmt.Errorf("config validation: messages.invalid_move is required")
	}

	return nil
}

// oneCountVerb reports whether format is safe for fmt.Sprintf with a single
// int: exactly one %d, and %% as the only other use of a percent sign.
func oneCountVerb(format string) bool {
	verbs := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		if i+1 == len(format) {
			return false
		}
		i++
		switch format[i] {
		case '%':
		case 'd':
			verbs++
		default:
			return false
		}
	}
	return verbs == 1
}

// DefaultGameConfig returns the built-in configuration for a variant
func DefaultGameConfig(variant Variant) *GameConfig {
	config := &GameConfig{
		Name:        "Solitario Napoletano",
		Description: "Dieci pile, quattro fondazioni, tre file coperte",
		Variant:     Classic,
		Messages:    DefaultMessages(),
	}
	if variant == StockWaste {
		config.Name = "Solitario Napoletano con Mazzo"
		config.Description = "Trenta carte scoperte, dieci nel mazzo da pescare"
		config.Variant = StockWaste
	}
	return config
}

// DefaultMessages returns the Italian message set
func DefaultMessages() Messages {
	return Messages{
		Welcome:          "Buona partita!",
		Victory:          "Congratulazioni! Hai vinto in %d mosse!",
		InvalidMove:      "Mossa non valida",
		NoSelection:      "Seleziona prima una carta",
		Drawn:            "Carta pescata dal mazzo",
		Recycled:         "Scarti rimessi nel mazzo",
		Promoted:         "%d carte spostate nelle fondazioni",
		NothingToPromote: "Nessuna carta da spostare nelle fondazioni",
	}
}

// LoadGameConfig loads and validates a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
