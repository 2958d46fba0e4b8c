package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/etrusk/tubaba/internal/combat"
	"github.com/etrusk/tubaba/internal/config"
	"github.com/etrusk/tubaba/internal/constants"
	"github.com/etrusk/tubaba/internal/dedupe"
	"github.com/etrusk/tubaba/internal/game"
	"github.com/etrusk/tubaba/internal/logging"
	"github.com/etrusk/tubaba/internal/storage"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// BattleService owns the battle lifecycle: setup from data definitions,
// tick-by-tick playback, instruction storage and run-to-completion. All
// combat semantics live in the engine; this layer only persists states and
// event rows around it.
type BattleService struct {
	repo        storage.Repository
	engine      *combat.Engine
	parties     []config.PartyDef
	encounters  []config.EncounterDef
	tickCeiling int
	tracer      trace.Tracer
}

func NewBattleService(repo storage.Repository, engine *combat.Engine, parties []config.PartyDef, encounters []config.EncounterDef, tickCeiling int, tracer trace.Tracer) *BattleService {
	return &BattleService{
		repo:        repo,
		engine:      engine,
		parties:     parties,
		encounters:  encounters,
		tickCeiling: tickCeiling,
		tracer:      tracer,
	}
}

// Parties returns the loaded party definitions in file order.
func (s *BattleService) Parties() []config.PartyDef { return s.parties }

// Encounters returns the loaded encounter definitions in stage order.
func (s *BattleService) Encounters() []config.EncounterDef { return s.encounters }

// Skills returns the engine's skill definitions in registration order.
func (s *BattleService) Skills() []combat.Skill { return s.engine.Library().All() }

func (s *BattleService) partyByID(id string) (config.PartyDef, error) {
	for _, p := range s.parties {
		if p.ID == id {
			return p, nil
		}
	}
	return config.PartyDef{}, ErrUnknownParty
}

func (s *BattleService) encounterByID(id string) (config.EncounterDef, error) {
	for _, e := range s.encounters {
		if e.ID == id {
			return e, nil
		}
	}
	return config.EncounterDef{}, ErrUnknownEncounter
}

// CreateBattle builds the initial combat state for the given party and
// encounter and persists it as a new battle.
func (s *BattleService) CreateBattle(partyID, encounterID string) (*game.Battle, error) {
	return s.createBattle(partyID, encounterID, "", nil)
}

// createBattle is the shared setup path. extraSkills are appended to every
// party member (run progression unlocks); runUUID links the battle to its
// run when non-empty.
func (s *BattleService) createBattle(partyID, encounterID, runUUID string, extraSkills []string) (*game.Battle, error) {
	party, err := s.partyByID(partyID)
	if err != nil {
		return nil, err
	}
	enc, err := s.encounterByID(encounterID)
	if err != nil {
		return nil, err
	}

	players := config.Roster(party.Members, false)
	for i := range players {
		players[i].Skills = mergeSkills(players[i].Skills, extraSkills)
	}
	st := combat.NewCombatState(players, config.Roster(enc.Enemies, true))

	b := &game.Battle{
		BattleUUID:  uuid.NewString(),
		PartyID:     partyID,
		EncounterID: encounterID,
		RunUUID:     runUUID,
	}
	if err := b.SetState(st); err != nil {
		return nil, fmt.Errorf("failed to encode initial state: %w", err)
	}
	if err := s.repo.CreateBattle(b); err != nil {
		return nil, err
	}
	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleUUID: b.BattleUUID,
		constants.LogFieldParty:      partyID,
		constants.LogFieldEncounter:  encounterID,
	})
	return b, nil
}

func mergeSkills(base, extra []string) []string {
	out := append([]string(nil), base...)
	for _, id := range extra {
		dup := false
		for _, have := range out {
			if have == id {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, id)
		}
	}
	return out
}

// ListBattles returns the newest battles first. A non-positive limit falls
// back to a small default page.
func (s *BattleService) ListBattles(limit int) ([]game.Battle, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListRecentBattles(limit)
}

// GetBattle loads a battle by UUID.
func (s *BattleService) GetBattle(uuid string) (*game.Battle, error) {
	b, err := s.repo.GetBattleByUUID(uuid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBattleNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetEvents returns a battle's append-only event log in tick order.
func (s *BattleService) GetEvents(uuid string) ([]game.BattleEvent, error) {
	if _, err := s.GetBattle(uuid); err != nil {
		return nil, err
	}
	return s.repo.GetEventsByBattle(uuid)
}

// StepResult is the outcome of one playback step.
type StepResult struct {
	Battle *game.Battle
	State  combat.CombatState
	Events []combat.Event
	Trace  *combat.TickTrace
	Ended  bool
}

// StepBattle advances a persisted battle by exactly one tick, storing the
// new state and appending the tick's events. With traced set, the result
// carries the engine's diagnostic side-channel; outputs are identical
// either way.
func (s *BattleService) StepBattle(ctx context.Context, battleUUID string, traced bool) (*StepResult, error) {
	b, err := s.GetBattle(battleUUID)
	if err != nil {
		return nil, err
	}
	if b.Status != combat.BattleOngoing {
		return nil, ErrBattleFinished
	}
	st, err := b.State()
	if err != nil {
		return nil, fmt.Errorf("failed to decode battle state: %w", err)
	}
	instr, err := b.Instructions()
	if err != nil {
		return nil, fmt.Errorf("failed to decode instructions: %w", err)
	}

	_, span := s.tracer.Start(ctx, "battle.tick", trace.WithAttributes(
		attribute.String("battle.uuid", battleUUID),
		attribute.Int("battle.tick", st.Tick+1),
	))
	defer span.End()

	var (
		res combat.TickResult
		tr  *combat.TickTrace
	)
	if traced {
		res, tr, err = s.engine.ExecuteTickTraced(st, instr)
	} else {
		res, err = s.engine.ExecuteTick(st, instr)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := b.SetState(res.State); err != nil {
		return nil, fmt.Errorf("failed to encode battle state: %w", err)
	}
	if err := s.repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	if err := s.repo.AppendEvents(game.EventRows(battleUUID, res.Events)); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Bool("battle.ended", res.BattleEnded))
	if res.BattleEnded {
		logging.Info("battle finished", logging.Fields{
			constants.LogFieldBattleUUID: battleUUID,
			constants.LogFieldTick:       res.State.Tick,
			constants.LogFieldStatus:     string(res.State.Status),
		})
	}
	return &StepResult{Battle: b, State: res.State, Events: res.Events, Trace: tr, Ended: res.BattleEnded}, nil
}

// RunToCompletion drives a battle tick by tick until it reaches a terminal
// status or the configured tick ceiling. Concurrent calls for the same
// battle collapse into one driver loop via singleflight.
func (s *BattleService) RunToCompletion(ctx context.Context, battleUUID string) (*game.Battle, error) {
	v, err, _ := dedupe.BattleRunGroup.Do(battleUUID, func() (interface{}, error) {
		ctx, span := s.tracer.Start(ctx, "battle.run", trace.WithAttributes(
			attribute.String("battle.uuid", battleUUID),
		))
		defer span.End()

		b, err := s.GetBattle(battleUUID)
		if err != nil {
			return nil, err
		}
		for b.Status == combat.BattleOngoing && b.Tick < s.tickCeiling {
			step, err := s.StepBattle(ctx, battleUUID, false)
			if err != nil {
				return nil, err
			}
			b = step.Battle
		}
		if b.Status == combat.BattleOngoing {
			logging.Info("battle stopped at tick ceiling", logging.Fields{
				constants.LogFieldBattleUUID: battleUUID,
				constants.LogFieldTick:       b.Tick,
			})
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.Battle), nil
}

// SetInstructions validates and stores a battle's per-combatant AI
// configuration. Validation is structural: known combatants, known skills,
// recognized modes. Whether a rule can ever fire is the engine's business.
func (s *BattleService) SetInstructions(battleUUID string, instr combat.Instructions) (*game.Battle, error) {
	b, err := s.GetBattle(battleUUID)
	if err != nil {
		return nil, err
	}
	if b.Status != combat.BattleOngoing {
		return nil, ErrBattleFinished
	}
	st, err := b.State()
	if err != nil {
		return nil, fmt.Errorf("failed to decode battle state: %w", err)
	}

	known := make(map[string]bool, len(st.Players)+len(st.Enemies))
	for _, c := range st.Players {
		known[c.ID] = true
	}
	for _, c := range st.Enemies {
		known[c.ID] = true
	}
	lib := s.engine.Library()
	for id, ci := range instr {
		if !known[id] {
			return nil, fmt.Errorf("%w: unknown combatant %q", ErrInvalidInstructions, id)
		}
		if ci.Mode != combat.ModeAI && ci.Mode != combat.ModeManual {
			return nil, fmt.Errorf("%w: combatant %q: unknown mode %q", ErrInvalidInstructions, id, ci.Mode)
		}
		for _, in := range ci.Instructions {
			if !lib.Has(in.SkillID) {
				return nil, fmt.Errorf("%w: combatant %q: unknown skill %q", ErrInvalidInstructions, id, in.SkillID)
			}
		}
	}

	if err := b.SetInstructions(instr); err != nil {
		return nil, fmt.Errorf("failed to encode instructions: %w", err)
	}
	if err := s.repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}
