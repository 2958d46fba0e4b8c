package main

import (
	"path/filepath"

	"github.com/etrusk/tubaba/internal/combat"
	"github.com/etrusk/tubaba/internal/config"
	"github.com/etrusk/tubaba/internal/logging"
	"github.com/etrusk/tubaba/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid server configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func loadDataOrExit(dataDir string, lib combat.SkillLibrary) ([]config.PartyDef, []config.EncounterDef) {
	parties, err := config.LoadParties(filepath.Join(dataDir, "parties.yaml"), lib)
	if err != nil {
		logging.Fatal("Missing or invalid party data", err, logging.Fields{"data_dir": dataDir})
	}
	encounters, err := config.LoadEncounters(filepath.Join(dataDir, "encounters.yaml"), lib)
	if err != nil {
		logging.Fatal("Missing or invalid encounter data", err, logging.Fields{"data_dir": dataDir})
	}
	return parties, encounters
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
