package combat

import "sort"

// InstructionMode controls whether the engine's rule evaluation runs for a
// combatant with externally supplied instructions. In manual mode the
// engine leaves the combatant idle and an outer controller queues actions.
type InstructionMode string

const (
	ModeAI     InstructionMode = "ai"
	ModeManual InstructionMode = "manual"
)

// Instruction is one externally configured AI rule bound to a skill.
type Instruction struct {
	SkillID    string      `json:"skill_id"`
	Priority   int         `json:"priority"`
	Conditions []Condition `json:"conditions,omitempty"`
	Targeting  TargetMode  `json:"targeting,omitempty"`
	Enabled    bool        `json:"enabled"`
}

// CombatantInstructions is the per-combatant AI configuration supplied by
// an outer layer. When absent the combatant falls back to the rules
// embedded on its skills.
type CombatantInstructions struct {
	Mode         InstructionMode `json:"mode"`
	Instructions []Instruction   `json:"instructions,omitempty"`
}

// Instructions maps combatant id to its AI configuration.
type Instructions map[string]CombatantInstructions

// selection is the outcome of a successful rule walk.
type selection struct {
	skill   Skill
	targets []string
}

// rulePair is one (rule, skill) candidate in the priority walk.
type rulePair struct {
	skill Skill
	rule  Rule
}

// gatherRulePairs collects the rule set for one combatant: the external
// instruction set when present and in AI mode, otherwise each equipped
// skill's embedded rules in skill order. Disabled instructions are skipped.
// The returned bool is false when the combatant is under manual control.
func (e *Engine) gatherRulePairs(c *Combatant, instr Instructions) ([]rulePair, bool, error) {
	if ci, ok := instr[c.ID]; ok {
		if ci.Mode == ModeManual {
			return nil, false, nil
		}
		pairs := make([]rulePair, 0, len(ci.Instructions))
		for _, in := range ci.Instructions {
			if !in.Enabled {
				continue
			}
			skill, err := e.lib.Get(in.SkillID)
			if err != nil {
				return nil, false, err
			}
			pairs = append(pairs, rulePair{
				skill: skill,
				rule:  Rule{Priority: in.Priority, Conditions: in.Conditions, Targeting: in.Targeting},
			})
		}
		return pairs, true, nil
	}

	var pairs []rulePair
	for _, id := range c.Skills {
		skill, err := e.lib.Get(id)
		if err != nil {
			return nil, false, err
		}
		for _, r := range skill.Rules {
			pairs = append(pairs, rulePair{skill: skill, rule: r})
		}
	}
	return pairs, true, nil
}

// selectAction walks a combatant's rules by descending priority (ties keep
// discovery order) and returns the first rule whose conditions pass and
// whose filtered target set is non-empty. Lower-priority matches are never
// selected; they are only recorded as not-reached for diagnostics. Finding
// nothing is a normal outcome: the combatant stays idle this tick.
func (e *Engine) selectAction(c *Combatant, allies, enemies []*Combatant, instr Instructions, trace *TickTrace) (selection, bool, error) {
	pairs, auto, err := e.gatherRulePairs(c, instr)
	if err != nil || !auto || len(pairs) == 0 {
		return selection{}, false, err
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].rule.Priority > pairs[j].rule.Priority
	})

	st := SelectionTrace{CombatantID: c.ID}
	var picked selection
	found := false
	for _, p := range pairs {
		rt := RuleTrace{SkillID: p.skill.ID, Priority: p.rule.Priority}
		switch {
		case found:
			rt.Outcome = OutcomeNotReached
		case !conditionsPass(p.rule.Conditions, c, allies, enemies):
			rt.Outcome = OutcomeFailed
		default:
			mode := p.skill.Targeting
			if p.rule.Targeting != "" {
				mode = p.rule.Targeting
			}
			candidates := selectTargets(mode, c, allies, enemies)
			filtered := applyFilters(mode, candidates, c, enemies)
			rt.Targeting = mode
			rt.Candidates = combatantIDs(candidates)
			rt.Filtered = combatantIDs(filtered)
			if len(filtered) == 0 {
				rt.Outcome = OutcomeSkipped
			} else {
				rt.Outcome = OutcomeSelected
				picked = selection{skill: p.skill, targets: combatantIDs(filtered)}
				found = true
			}
		}
		st.Rules = append(st.Rules, rt)
	}
	if trace != nil {
		trace.addSelection(st)
	}
	return picked, found, nil
}

func combatantIDs(pool []*Combatant) []string {
	if len(pool) == 0 {
		return nil
	}
	out := make([]string, len(pool))
	for i, c := range pool {
		out[i] = c.ID
	}
	return out
}
