// Command validate checks the game configuration JSON files in the
// ../configs directory (or the directory given as the first argument). It checks:
//   - JSON structure, with unknown fields rejected
//   - Required fields, variant and message placeholders
//   - Messages the variant will show but the file leaves empty
//   - That a seeded deal of the configuration produces a valid board
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pterm/pterm"

	"github.com/wricardo/solitario/game/engine"
)

var configName = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidationResult captures the outcome of validating a single file.
// Errors make the file invalid; Notes are informational.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) note(format string, args ...interface{}) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	if name := strings.TrimSuffix(result.File, ".json"); !configName.MatchString(name) {
		result.fail("File name %q is not a usable config ID (lowercase letters, digits, _ and -)", name)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	checkMessages(&config, &result)
	checkDeal(&config, &result)
	return result
}

// checkMessages notes messages the player would see as blank
func checkMessages(config *engine.GameConfig, result *ValidationResult) {
	optional := map[string]string{
		"no_selection":       config.Messages.NoSelection,
		"nothing_to_promote": config.Messages.NothingToPromote,
	}
	if config.Variant == engine.StockWaste {
		optional["drawn"] = config.Messages.Drawn
		optional["recycled"] = config.Messages.Recycled
	}
	for _, key := range []string{"no_selection", "nothing_to_promote", "drawn", "recycled"} {
		if msg, ok := optional[key]; ok && msg == "" {
			result.note("messages.%s is empty", key)
		}
	}
}

// checkDeal deals the configuration once with a fixed seed
func checkDeal(config *engine.GameConfig, result *ValidationResult) {
	e, err := engine.NewEngine(config, engine.WithSeed(1))
	if err != nil {
		result.fail("Cannot start a game: %v", err)
		return
	}
	state := e.GetState()
	if err := engine.ValidateState(state); err != nil {
		result.fail("Deal produced an invalid board: %v", err)
		return
	}
	result.note("✓ %s deal: %d cards, %d face-down, %d in stock", config.Variant, state.CountCards(), state.CountFaceDown(), len(state.Stock))
}

// main validates every *.json file in the config directory, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		pterm.Error.Printfln("Error finding config files: %v", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		pterm.Error.Printfln("No config files in %s", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		pterm.DefaultSection.Println(result.File)
		if result.Valid {
			pterm.Success.Println("VALID")
		} else {
			pterm.Error.Println("INVALID")
			allValid = false
		}
		for _, e := range result.Errors {
			pterm.Println("  " + e)
		}
		for _, n := range result.Notes {
			pterm.FgGray.Println("  " + n)
		}
	}

	pterm.Println()
	if !allValid {
		pterm.Error.Println("Some configurations have errors")
		os.Exit(1)
	}
	pterm.Success.Println("All configurations are valid!")
}
