package storage

import (
	"time"

	"github.com/etrusk/tubaba/internal/combat"
	"github.com/etrusk/tubaba/internal/game"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByUUID(uuid string) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.Where("battle_uuid = ?", uuid).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Save(b).Error
}

func (r *sqliteRepository) ListRecentBattles(limit int) ([]game.Battle, error) {
	if limit <= 0 {
		limit = 20
	}
	var battles []game.Battle
	if err := r.db.Order("created_at desc").Limit(limit).Find(&battles).Error; err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) AppendEvents(rows []game.BattleEvent) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

func (r *sqliteRepository) GetEventsByBattle(uuid string) ([]game.BattleEvent, error) {
	var rows []game.BattleEvent
	if err := r.db.Where("battle_uuid = ?", uuid).Order("tick asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sqliteRepository) CreateRun(run *game.Run) error {
	return r.db.Create(run).Error
}

func (r *sqliteRepository) GetRunByUUID(uuid string) (*game.Run, error) {
	var run game.Run
	if err := r.db.Where("run_uuid = ?", uuid).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *sqliteRepository) UpdateRun(run *game.Run) error {
	return r.db.Save(run).Error
}

func (r *sqliteRepository) DeleteFinishedBattlesBefore(cutoff time.Time) (int64, error) {
	tx := r.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	var uuids []string
	if err := tx.Model(&game.Battle{}).
		Where("status IN ? AND updated_at < ?", []string{string(combat.BattleVictory), string(combat.BattleDefeat)}, cutoff).
		Pluck("battle_uuid", &uuids).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if len(uuids) == 0 {
		tx.Rollback()
		return 0, nil
	}

	if err := tx.Where("battle_uuid IN ?", uuids).Delete(&game.BattleEvent{}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	res := tx.Where("battle_uuid IN ?", uuids).Delete(&game.Battle{})
	if res.Error != nil {
		tx.Rollback()
		return 0, res.Error
	}
	return res.RowsAffected, tx.Commit().Error
}
