package combat

// StatusType identifies one of the closed set of status effects a combatant
// can carry. At most one instance per type is ever active on a combatant.
type StatusType string

const (
	StatusPoisoned  StatusType = "poisoned"
	StatusStunned   StatusType = "stunned"
	StatusShielded  StatusType = "shielded"
	StatusTaunting  StatusType = "taunting"
	StatusDefending StatusType = "defending"
	StatusEnraged   StatusType = "enraged"
)

// PermanentDuration marks a status that never decays (enraged). It is only
// removed by replacement or knockout.
const PermanentDuration = -1

// PoisonDamagePerTick is the fixed per-tick damage of an applied poison,
// regardless of the value declared on the applying skill effect.
const PoisonDamagePerTick = 5

// StatusEffect is one active status instance on a combatant. Value carries
// the type-specific payload: poison damage per tick, remaining shield
// capacity, or the enraged damage bonus.
type StatusEffect struct {
	Type     StatusType `json:"type"`
	Duration int        `json:"duration"`
	Value    int        `json:"value,omitempty"`
}

// Active reports whether the status still has effect (positive remaining
// duration, or permanent).
func (s StatusEffect) Active() bool {
	return s.Duration > 0 || s.Duration == PermanentDuration
}

// Action is an in-flight skill use counting down to resolution.
type Action struct {
	SkillID        string   `json:"skill_id"`
	CasterID       string   `json:"caster_id"`
	TargetIDs      []string `json:"target_ids"`
	TicksRemaining int      `json:"ticks_remaining"`
}

// Combatant is a single participant. HP stays within [0, MaxHP]; reaching 0
// marks it knocked out (inert except as a revive target).
type Combatant struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	MaxHP     int            `json:"max_hp"`
	CurrentHP int            `json:"current_hp"`
	Skills    []string       `json:"skills"`
	Statuses  []StatusEffect `json:"statuses,omitempty"`
	Action    *Action        `json:"action,omitempty"`
	Enemy     bool           `json:"enemy"`
}

// Alive reports whether the combatant is not knocked out.
func (c *Combatant) Alive() bool { return c.CurrentHP > 0 }

// HasStatus reports whether an active instance of the given type is present.
func (c *Combatant) HasStatus(t StatusType) bool {
	for _, s := range c.Statuses {
		if s.Type == t && s.Active() {
			return true
		}
	}
	return false
}

// StatusValue returns the value of the active instance of the given type,
// or 0 when absent.
func (c *Combatant) StatusValue(t StatusType) int {
	for _, s := range c.Statuses {
		if s.Type == t && s.Active() {
			return s.Value
		}
	}
	return 0
}

// clone returns a deep copy sharing no mutable substructure.
func (c *Combatant) clone() Combatant {
	out := *c
	if c.Skills != nil {
		out.Skills = append([]string(nil), c.Skills...)
	}
	if c.Statuses != nil {
		out.Statuses = append([]StatusEffect(nil), c.Statuses...)
	}
	if c.Action != nil {
		a := *c.Action
		a.TargetIDs = append([]string(nil), c.Action.TargetIDs...)
		out.Action = &a
	}
	return out
}

// BattleStatus is the tri-state outcome of a battle.
type BattleStatus string

const (
	BattleOngoing BattleStatus = "ongoing"
	BattleVictory BattleStatus = "victory"
	BattleDefeat  BattleStatus = "defeat"
)

// CombatState is the single unit of truth threaded through every tick. The
// engine never retains anything between calls except what it returns here.
type CombatState struct {
	Players []Combatant  `json:"players"`
	Enemies []Combatant  `json:"enemies"`
	Tick    int          `json:"tick"`
	Actions []Action     `json:"actions,omitempty"`
	Events  []Event      `json:"events,omitempty"`
	Status  BattleStatus `json:"status"`
}

// NewCombatState builds the initial state for the given rosters. Roster
// order is significant: it drives tie-breaking throughout the engine.
func NewCombatState(players, enemies []Combatant) CombatState {
	st := CombatState{
		Players: make([]Combatant, len(players)),
		Enemies: make([]Combatant, len(enemies)),
		Status:  BattleOngoing,
	}
	for i := range players {
		st.Players[i] = players[i].clone()
		st.Players[i].Enemy = false
	}
	for i := range enemies {
		st.Enemies[i] = enemies[i].clone()
		st.Enemies[i].Enemy = true
	}
	return st
}

// Clone returns a structural copy of the state. Mutating the copy never
// affects the original, which is what keeps ticks replayable.
func (s CombatState) Clone() CombatState {
	out := s
	out.Players = make([]Combatant, len(s.Players))
	for i := range s.Players {
		out.Players[i] = s.Players[i].clone()
	}
	out.Enemies = make([]Combatant, len(s.Enemies))
	for i := range s.Enemies {
		out.Enemies[i] = s.Enemies[i].clone()
	}
	if s.Actions != nil {
		out.Actions = make([]Action, len(s.Actions))
		for i := range s.Actions {
			a := s.Actions[i]
			a.TargetIDs = append([]string(nil), s.Actions[i].TargetIDs...)
			out.Actions[i] = a
		}
	}
	out.Events = append([]Event(nil), s.Events...)
	return out
}
