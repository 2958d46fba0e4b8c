package storage

import (
	"time"

	"github.com/etrusk/tubaba/internal/game"
)

type Repository interface {
	CreateBattle(b *game.Battle) error
	GetBattleByUUID(uuid string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	// ListRecentBattles returns the newest battles first, capped at limit.
	ListRecentBattles(limit int) ([]game.Battle, error)

	// AppendEvents inserts one tick's worth of event rows. The log is
	// append-only; rows are never updated or reordered.
	AppendEvents(rows []game.BattleEvent) error
	GetEventsByBattle(uuid string) ([]game.BattleEvent, error)

	CreateRun(r *game.Run) error
	GetRunByUUID(uuid string) (*game.Run, error)
	UpdateRun(r *game.Run) error

	// DeleteFinishedBattlesBefore removes terminal battles (and their event
	// rows) last updated before the cutoff. Used by the background sweeper.
	DeleteFinishedBattlesBefore(cutoff time.Time) (int64, error)
}
