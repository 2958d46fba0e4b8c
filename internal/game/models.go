package game

import (
	"encoding/json"

	"github.com/etrusk/tubaba/internal/combat"

	"gorm.io/gorm"
)

// Battle is the persisted form of one combat encounter. The full engine
// state travels as an opaque JSON blob: the engine owns its shape, the
// database only needs the denormalized columns used for lookups.
type Battle struct {
	gorm.Model
	BattleUUID  string `json:"battle_uuid" gorm:"uniqueIndex"`
	PartyID     string `json:"party_id"`
	EncounterID string `json:"encounter_id"`
	// RunUUID links the battle to a progression run, empty for one-off
	// battles created directly through the API.
	RunUUID string              `json:"run_uuid,omitempty" gorm:"index"`
	Tick    int                 `json:"tick"`
	Status  combat.BattleStatus `json:"status"`
	// StateJSON holds the serialized combat.CombatState without its event
	// log; events are stored as rows in battle_events instead.
	StateJSON []byte `json:"-" gorm:"column:state_json;type:blob"`
	// InstructionsJSON holds the serialized combat.Instructions, empty
	// until the client configures any.
	InstructionsJSON []byte `json:"-" gorm:"column:instructions_json;type:blob"`
}

func (Battle) TableName() string { return "battles" }

// State decodes the persisted combat state.
func (b *Battle) State() (combat.CombatState, error) {
	var st combat.CombatState
	if err := json.Unmarshal(b.StateJSON, &st); err != nil {
		return combat.CombatState{}, err
	}
	return st, nil
}

// SetState encodes the combat state and syncs the denormalized columns.
// The in-state event log is dropped before encoding: battle_events rows are
// the single source of truth for history.
func (b *Battle) SetState(st combat.CombatState) error {
	st.Events = nil
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	b.StateJSON = raw
	b.Tick = st.Tick
	b.Status = st.Status
	return nil
}

// Instructions decodes the stored per-combatant AI configuration. A battle
// with none stored yields nil, which makes the engine fall back to the
// skills' embedded rules.
func (b *Battle) Instructions() (combat.Instructions, error) {
	if len(b.InstructionsJSON) == 0 {
		return nil, nil
	}
	var instr combat.Instructions
	if err := json.Unmarshal(b.InstructionsJSON, &instr); err != nil {
		return nil, err
	}
	return instr, nil
}

// SetInstructions encodes and stores the AI configuration.
func (b *Battle) SetInstructions(instr combat.Instructions) error {
	raw, err := json.Marshal(instr)
	if err != nil {
		return err
	}
	b.InstructionsJSON = raw
	return nil
}

// BattleEvent is one row of the append-only battle log.
type BattleEvent struct {
	gorm.Model
	BattleUUID string `json:"-" gorm:"index:idx_battle_events_battle_tick"`
	Tick       int    `json:"tick" gorm:"index:idx_battle_events_battle_tick"`
	Type       string `json:"type"`
	Actor      string `json:"actor,omitempty"`
	Target     string `json:"target,omitempty"`
	Value      int    `json:"value,omitempty"`
	SkillID    string `json:"skill_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Message    string `json:"message"`
}

func (BattleEvent) TableName() string { return "battle_events" }

// EventRows converts one tick's engine events into persistable rows.
func EventRows(battleUUID string, events []combat.Event) []BattleEvent {
	rows := make([]BattleEvent, 0, len(events))
	for _, ev := range events {
		rows = append(rows, BattleEvent{
			BattleUUID: battleUUID,
			Tick:       ev.Tick,
			Type:       string(ev.Type),
			Actor:      ev.Actor,
			Target:     ev.Target,
			Value:      ev.Value,
			SkillID:    ev.SkillID,
			Status:     string(ev.Status),
			Message:    ev.Message,
		})
	}
	return rows
}

// Run is a progression through the configured encounter sequence. Advancing
// reads only the current battle's terminal status; run state never reaches
// into combat internals.
type Run struct {
	gorm.Model
	RunUUID string `json:"run_uuid" gorm:"uniqueIndex"`
	PartyID string `json:"party_id"`
	// Stage indexes into the encounter sequence; the run is complete once
	// it moves past the last stage.
	Stage             int       `json:"stage"`
	Status            RunStatus `json:"status"`
	CurrentBattleUUID string    `json:"current_battle_uuid,omitempty"`
	// UnlockedSkillsJSON accumulates the skill ids granted by defeated
	// encounters, added to the party on each subsequent stage.
	UnlockedSkillsJSON []byte `json:"-" gorm:"column:unlocked_skills_json;type:blob"`
}

func (Run) TableName() string { return "runs" }

// UnlockedSkills decodes the accumulated skill unlocks.
func (r *Run) UnlockedSkills() ([]string, error) {
	if len(r.UnlockedSkillsJSON) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(r.UnlockedSkillsJSON, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddUnlockedSkill appends a skill id, ignoring duplicates.
func (r *Run) AddUnlockedSkill(id string) error {
	skills, err := r.UnlockedSkills()
	if err != nil {
		return err
	}
	for _, s := range skills {
		if s == id {
			return nil
		}
	}
	raw, err := json.Marshal(append(skills, id))
	if err != nil {
		return err
	}
	r.UnlockedSkillsJSON = raw
	return nil
}
