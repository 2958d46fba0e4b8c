package combat

import "sort"

// TickCeiling bounds RunBattle against rule configurations that can never
// reach a terminal status.
const TickCeiling = 999

// Engine executes combat ticks against an immutable skill library. It holds
// no other state: every call is a pure function of its inputs, so one
// engine value can serve any number of independent battles.
type Engine struct {
	lib SkillLibrary
}

// NewEngine returns an engine bound to the given skill library.
func NewEngine(lib SkillLibrary) *Engine {
	return &Engine{lib: lib}
}

// Library exposes the engine's skill registry (read-only by construction).
func (e *Engine) Library() SkillLibrary { return e.lib }

// TickResult is the complete output of one tick.
type TickResult struct {
	State       CombatState `json:"state"`
	Events      []Event     `json:"events"`
	BattleEnded bool        `json:"battle_ended"`
}

// ExecuteTick advances the battle by one tick. The input state is
// read-only; the result holds a wholly new state. Calling it twice with the
// same inputs produces identical results. The only error is an unknown
// skill id, which aborts the tick rather than corrupting the log.
func (e *Engine) ExecuteTick(state CombatState, instr Instructions) (TickResult, error) {
	res, _, err := e.executeTick(state, instr, false)
	return res, err
}

// ExecuteTickTraced is ExecuteTick plus the diagnostic side-channel. Both
// variants run the same code; for identical inputs their state, events and
// ended flag are identical.
func (e *Engine) ExecuteTickTraced(state CombatState, instr Instructions) (TickResult, *TickTrace, error) {
	return e.executeTick(state, instr, true)
}

// RunBattle drives ExecuteTick until the battle reaches a terminal status
// or the tick ceiling, returning the final state.
func (e *Engine) RunBattle(state CombatState, instr Instructions) (CombatState, error) {
	st := state
	for st.Status == BattleOngoing && st.Tick < TickCeiling {
		res, err := e.ExecuteTick(st, instr)
		if err != nil {
			return st, err
		}
		st = res.State
	}
	return st, nil
}

func (e *Engine) executeTick(state CombatState, instr Instructions, traced bool) (TickResult, *TickTrace, error) {
	st := state.Clone()
	st.Tick++

	var trace *TickTrace
	if traced {
		trace = &TickTrace{Tick: st.Tick}
	}

	// One lookup structure per tick; roster membership lives on the
	// combatant, never in positional knowledge.
	roster := make([]*Combatant, 0, len(st.Players)+len(st.Enemies))
	for i := range st.Players {
		roster = append(roster, &st.Players[i])
	}
	for i := range st.Enemies {
		roster = append(roster, &st.Enemies[i])
	}
	byID := make(map[string]*Combatant, len(roster))
	for _, c := range roster {
		byID[c.ID] = c
	}
	players := roster[:len(st.Players)]
	enemies := roster[len(st.Players):]

	var events []Event

	// Phase 1: rule evaluation for every idle combatant.
	for _, c := range roster {
		if !c.Alive() || c.Action != nil || c.HasStatus(StatusStunned) {
			continue
		}
		allies, opponents := players, enemies
		if c.Enemy {
			allies, opponents = enemies, players
		}
		sel, ok, err := e.selectAction(c, allies, opponents, instr, trace)
		if err != nil {
			return TickResult{}, nil, err
		}
		if !ok {
			continue
		}
		a := Action{
			SkillID:        sel.skill.ID,
			CasterID:       c.ID,
			TargetIDs:      sel.targets,
			TicksRemaining: sel.skill.BaseDuration,
		}
		c.Action = &a
	}

	// Phase 2: partition before mutating. Actions already at zero resolve
	// this tick; the rest count down (never below zero). A just-queued
	// action is decremented here too, which is exactly what gives every
	// action its one-tick minimum latency.
	var resolving []Action
	for _, c := range roster {
		if c.Action == nil {
			continue
		}
		if c.Action.TicksRemaining == 0 {
			resolving = append(resolving, *c.Action)
		} else {
			c.Action.TicksRemaining--
		}
	}

	// Phase 3: resolve the completed batch in deterministic order: players
	// strictly before enemies, caster id ascending within each side.
	sort.SliceStable(resolving, func(i, j int) bool {
		ci, cj := byID[resolving[i].CasterID], byID[resolving[j].CasterID]
		if ci.Enemy != cj.Enemy {
			return !ci.Enemy
		}
		return resolving[i].CasterID < resolving[j].CasterID
	})
	if len(resolving) > 0 {
		// Clear the casters' pointers first: an action that resolves this
		// tick is no longer in flight, so the cancellation substep cannot
		// touch it.
		for _, a := range resolving {
			if c := byID[a.CasterID]; c != nil {
				c.Action = nil
			}
		}
		evs, err := resolveActions(e.lib, resolving, byID, roster, trace)
		if err != nil {
			return TickResult{}, nil, err
		}
		events = append(events, evs...)
	}

	// Phase 4: time-based status effects for every combatant, including
	// ones untouched this tick.
	for _, c := range roster {
		updated, evs := processStatusEffects(*c)
		*c = updated
		events = append(events, evs...)
	}

	// Phase 5: cleanup and end conditions. A knocked-out combatant keeps
	// no statuses and no in-flight action, even mid-countdown. Victory is
	// checked before defeat: wiping the enemy roster wins the battle even
	// if the party falls on the same tick.
	for _, c := range roster {
		if !c.Alive() {
			c.Statuses = nil
			c.Action = nil
		}
	}
	if st.Status == BattleOngoing {
		if !anyAlive(enemies) {
			st.Status = BattleVictory
			events = append(events, Event{Type: EventVictory, Message: "All enemies are defeated"})
		} else if !anyAlive(players) {
			st.Status = BattleDefeat
			events = append(events, Event{Type: EventDefeat, Message: "The party has fallen"})
		}
	}

	// The shared action set mirrors the combatants' own pointers.
	st.Actions = st.Actions[:0]
	for _, c := range roster {
		if c.Action != nil {
			st.Actions = append(st.Actions, *c.Action)
		}
	}

	for i := range events {
		events[i].Tick = st.Tick
	}
	st.Events = append(st.Events, events...)

	return TickResult{State: st, Events: events, BattleEnded: st.Status != BattleOngoing}, trace, nil
}

func anyAlive(pool []*Combatant) bool {
	for _, c := range pool {
		if c.Alive() {
			return true
		}
	}
	return false
}
