package combat

// RuleOutcome is the explicit four-way status of one evaluated rule. It
// replaces any single "matched" boolean: conditions passing and the rule
// actually being selected are different things.
type RuleOutcome string

const (
	// OutcomeSelected: conditions passed and the filtered target set was
	// non-empty; this rule chose the action.
	OutcomeSelected RuleOutcome = "selected"
	// OutcomeSkipped: conditions passed but filtering left no valid target.
	OutcomeSkipped RuleOutcome = "skipped"
	// OutcomeNotReached: a higher-priority rule was already selected.
	OutcomeNotReached RuleOutcome = "not-reached"
	// OutcomeFailed: at least one condition evaluated false.
	OutcomeFailed RuleOutcome = "failed"
)

// RuleTrace records one rule evaluation, including the full targeting
// detail when the rule's conditions passed.
type RuleTrace struct {
	SkillID    string      `json:"skill_id"`
	Priority   int         `json:"priority"`
	Outcome    RuleOutcome `json:"outcome"`
	Targeting  TargetMode  `json:"targeting,omitempty"`
	Candidates []string    `json:"candidates,omitempty"`
	Filtered   []string    `json:"filtered,omitempty"`
}

// SelectionTrace is the complete rule walk for one idle combatant.
type SelectionTrace struct {
	CombatantID string      `json:"combatant_id"`
	Rules       []RuleTrace `json:"rules"`
}

// DamageTrace is one damage instance broken down across resolver substeps:
// Base is the post-defending, pre-shield amount; Absorbed what the shield
// ate; Final what reached hit points.
type DamageTrace struct {
	TargetID string `json:"target_id"`
	Base     int    `json:"base"`
	Absorbed int    `json:"absorbed"`
	Final    int    `json:"final"`
}

// HealTrace is one healing instance (Revive marks a knocked-out target
// restored through a revive effect).
type HealTrace struct {
	TargetID string `json:"target_id"`
	Amount   int    `json:"amount"`
	Revive   bool   `json:"revive,omitempty"`
}

// StatusTrace is one applied status instance.
type StatusTrace struct {
	TargetID string     `json:"target_id"`
	Status   StatusType `json:"status"`
	Duration int        `json:"duration"`
	Value    int        `json:"value,omitempty"`
}

// ResolutionTrace is the per-substep breakdown of one resolved action.
type ResolutionTrace struct {
	CasterID  string        `json:"caster_id"`
	SkillID   string        `json:"skill_id"`
	Damage    []DamageTrace `json:"damage,omitempty"`
	Heals     []HealTrace   `json:"heals,omitempty"`
	Statuses  []StatusTrace `json:"statuses,omitempty"`
	Cancelled []string      `json:"cancelled,omitempty"`
}

// TickTrace is the diagnostic side-channel of one tick. Capturing it never
// changes the tick's outputs: the traced and untraced paths are the same
// code, the recorder is just absent in production.
type TickTrace struct {
	Tick        int               `json:"tick"`
	Selections  []SelectionTrace  `json:"selections,omitempty"`
	Resolutions []ResolutionTrace `json:"resolutions,omitempty"`
}

func (t *TickTrace) addSelection(s SelectionTrace) {
	if t == nil {
		return
	}
	t.Selections = append(t.Selections, s)
}

func (t *TickTrace) addResolution(r ResolutionTrace) {
	if t == nil {
		return
	}
	t.Resolutions = append(t.Resolutions, r)
}
