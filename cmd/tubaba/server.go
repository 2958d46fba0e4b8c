package main

import (
	"time"

	"github.com/etrusk/tubaba/internal/logging"
	"github.com/etrusk/tubaba/internal/storage"
)

const sweepInterval = 10 * time.Minute

// startBattleSweeper periodically deletes terminal battles (and their event
// rows) that have not been touched within the retention window. Finished
// battles are immutable, so nothing a client still cares about can race the
// delete beyond a 404 on a stale UUID.
func startBattleSweeper(repo storage.Repository, retention time.Duration) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-retention)
			n, err := repo.DeleteFinishedBattlesBefore(cutoff)
			if err != nil {
				logging.Error("battle sweeper failed", err, nil)
				continue
			}
			if n > 0 {
				logging.Info("swept finished battles", logging.Fields{"deleted": n})
			}
		}
	}()
}
