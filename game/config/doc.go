// Package config provides configuration management for Solitario Napoletano.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Default configuration selection
//   - Saving new configurations
//   - Process settings read from the environment
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory. The
// file name without extension is the config ID used to create sessions.
// Each configuration defines:
//   - The variant: "classic" or "stock_waste"
//   - Whether a successful move is followed by an automatic promotion pass
//   - The player-facing messages; victory and promoted take one %d
//
// Available Configurations:
//   - classic: all 40 cards dealt, three rows face-down
//   - stock_waste: 30 cards face-up, 10 in the stock
//   - veloce: classic with auto-promotion after each move
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("stock_waste")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// Settings:
//
// LoadSettings reads SOLITARIO_* and NGROK_* variables with envdecode. Call
// godotenv.Load first to pick up a .env file.
package config
