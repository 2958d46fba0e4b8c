package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etrusk/tubaba/internal/combat"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	// Directory holding parties.yaml and encounters.yaml.
	DataDir string `json:"data_dir"`
	// Optional guard below the engine's hard ceiling; 0 means "use the
	// engine default".
	TickCeiling int `json:"tick_ceiling"`
	// How long finished battles are kept before the sweeper deletes them,
	// as a Go duration string ("24h", "90m").
	BattleTTL string `json:"battle_ttl"`
}

// LoadedConfig is the validated server configuration.
type LoadedConfig struct {
	ServerAddress string
	DBPath        string
	DataDir       string
	TickCeiling   int
	BattleTTL     time.Duration
}

// LoadConfig reads the configuration file at path and returns the validated
// server settings. Missing optional values fall back to defaults; a tick
// ceiling above the engine's hard limit is a configuration error.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	dbPath := "./data/tubaba.db"
	if rc.Database != nil && rc.Database.Path != "" {
		dbPath = rc.Database.Path
	}
	dataDir := strings.TrimSpace(rc.DataDir)
	if dataDir == "" {
		dataDir = "./data"
	}

	ceiling := rc.TickCeiling
	if ceiling == 0 {
		ceiling = combat.TickCeiling
	}
	if ceiling < 1 || ceiling > combat.TickCeiling {
		return nil, fmt.Errorf("config file %s: tick_ceiling %d out of range [1, %d]", path, rc.TickCeiling, combat.TickCeiling)
	}

	ttl := 24 * time.Hour
	if rc.BattleTTL != "" {
		ttl, err = time.ParseDuration(rc.BattleTTL)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("config file %s: invalid battle_ttl %q", path, rc.BattleTTL)
		}
	}

	return &LoadedConfig{
		ServerAddress: addr,
		DBPath:        dbPath,
		DataDir:       dataDir,
		TickCeiling:   ceiling,
		BattleTTL:     ttl,
	}, nil
}
