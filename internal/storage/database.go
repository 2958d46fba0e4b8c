package storage

import (
	"github.com/etrusk/tubaba/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database and keeps the schema updated via
// AutoMigrate. The data file is operational state only; deleting it loses
// battle history but no configuration.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&game.Battle{}, &game.BattleEvent{}, &game.Run{}); err != nil {
		return nil, err
	}

	// Event reads are always "all rows for one battle in tick order"; make
	// that path an index-only scan.
	if execErr := db.Exec("CREATE INDEX IF NOT EXISTS idx_battle_events_battle_tick ON battle_events(battle_uuid, tick);").Error; execErr != nil {
		return nil, execErr
	}
	return db, nil
}
