package service

import (
	"errors"

	"github.com/etrusk/tubaba/internal/combat"
	"github.com/etrusk/tubaba/internal/constants"
	"github.com/etrusk/tubaba/internal/game"
	"github.com/etrusk/tubaba/internal/logging"
	"github.com/etrusk/tubaba/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RunService walks a party through the configured encounter sequence. It
// reads only each battle's terminal status; combat semantics never leak
// into progression decisions.
type RunService struct {
	repo    storage.Repository
	battles *BattleService
}

func NewRunService(repo storage.Repository, battles *BattleService) *RunService {
	return &RunService{repo: repo, battles: battles}
}

// CreateRun starts a new run for the given party: stage 0 with a battle
// against the first configured encounter.
func (s *RunService) CreateRun(partyID string) (*game.Run, *game.Battle, error) {
	if _, err := s.battles.partyByID(partyID); err != nil {
		return nil, nil, err
	}
	encounters := s.battles.Encounters()

	run := &game.Run{
		RunUUID: uuid.NewString(),
		PartyID: partyID,
		Stage:   0,
		Status:  game.RunActive,
	}
	b, err := s.battles.createBattle(partyID, encounters[0].ID, run.RunUUID, nil)
	if err != nil {
		return nil, nil, err
	}
	run.CurrentBattleUUID = b.BattleUUID
	if err := s.repo.CreateRun(run); err != nil {
		return nil, nil, err
	}
	logging.Info("run created", logging.Fields{
		constants.LogFieldRunUUID: run.RunUUID,
		constants.LogFieldParty:   partyID,
	})
	return run, b, nil
}

// GetRun loads a run by UUID.
func (s *RunService) GetRun(uuid string) (*game.Run, error) {
	run, err := s.repo.GetRunByUUID(uuid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// AdvanceRun moves a run forward after its current battle has finished.
// Victory unlocks the encounter's configured skill for every party member
// and opens the next stage battle; defeat fails the run; clearing the last
// stage completes it.
func (s *RunService) AdvanceRun(runUUID string) (*game.Run, *game.Battle, error) {
	run, err := s.GetRun(runUUID)
	if err != nil {
		return nil, nil, err
	}
	if run.Status != game.RunActive {
		return nil, nil, ErrRunFinished
	}
	b, err := s.battles.GetBattle(run.CurrentBattleUUID)
	if err != nil {
		return nil, nil, err
	}

	switch b.Status {
	case combat.BattleOngoing:
		return nil, nil, ErrRunBattleUnresolved

	case combat.BattleDefeat:
		run.Status = game.RunFailed
		if err := s.repo.UpdateRun(run); err != nil {
			return nil, nil, err
		}
		logging.Info("run failed", logging.Fields{
			constants.LogFieldRunUUID: run.RunUUID,
			constants.LogFieldStage:   run.Stage,
		})
		return run, nil, nil

	case combat.BattleVictory:
		encounters := s.battles.Encounters()
		cleared := encounters[run.Stage]
		if cleared.UnlockSkill != "" {
			if err := run.AddUnlockedSkill(cleared.UnlockSkill); err != nil {
				return nil, nil, err
			}
		}
		run.Stage++
		if run.Stage >= len(encounters) {
			run.Status = game.RunComplete
			run.CurrentBattleUUID = ""
			if err := s.repo.UpdateRun(run); err != nil {
				return nil, nil, err
			}
			logging.Info("run complete", logging.Fields{
				constants.LogFieldRunUUID: run.RunUUID,
				constants.LogFieldStage:   run.Stage,
			})
			return run, nil, nil
		}

		unlocked, err := run.UnlockedSkills()
		if err != nil {
			return nil, nil, err
		}
		next, err := s.battles.createBattle(run.PartyID, encounters[run.Stage].ID, run.RunUUID, unlocked)
		if err != nil {
			return nil, nil, err
		}
		run.CurrentBattleUUID = next.BattleUUID
		if err := s.repo.UpdateRun(run); err != nil {
			return nil, nil, err
		}
		return run, next, nil
	}
	return nil, nil, ErrRunBattleUnresolved
}
