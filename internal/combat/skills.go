package combat

import "fmt"

// EffectKind identifies what a single skill effect does. The set is closed;
// every switch over it handles all kinds.
type EffectKind string

const (
	EffectDamage EffectKind = "damage"
	EffectHeal   EffectKind = "heal"
	EffectShield EffectKind = "shield"
	EffectStatus EffectKind = "status"
	EffectRevive EffectKind = "revive"
	EffectCancel EffectKind = "cancel"
)

// Effect is one component of a skill. Only the fields relevant to its kind
// are set: Value for damage/heal/revive amounts and shield capacity or the
// enraged bonus, Status and Duration for applied statuses and shields.
type Effect struct {
	Kind     EffectKind `json:"kind"`
	Value    int        `json:"value,omitempty"`
	Status   StatusType `json:"status,omitempty"`
	Duration int        `json:"duration,omitempty"`
}

// TargetMode selects the candidate pool and ordering rule for a skill.
type TargetMode string

const (
	TargetSelf           TargetMode = "self"
	TargetEnemyLowestHP  TargetMode = "single-enemy-lowest-hp"
	TargetEnemyHighestHP TargetMode = "single-enemy-highest-hp"
	TargetAllEnemies     TargetMode = "all-enemies"
	TargetAllyLowestHP   TargetMode = "ally-lowest-hp"
	TargetAllyDead       TargetMode = "ally-dead"
	TargetAllAllies      TargetMode = "all-allies"
)

// enemyDirected reports whether the mode targets the opposing team.
func (m TargetMode) enemyDirected() bool {
	switch m {
	case TargetEnemyLowestHP, TargetEnemyHighestHP, TargetAllEnemies:
		return true
	}
	return false
}

// allyDirected reports whether the mode targets the caster's own team
// excluding the caster.
func (m TargetMode) allyDirected() bool {
	return m == TargetAllyLowestHP || m == TargetAllAllies
}

// ConditionType identifies one of the five rule predicates.
type ConditionType string

const (
	ConditionHPBelow        ConditionType = "hp-below"
	ConditionAllyCount      ConditionType = "ally-count"
	ConditionEnemyHasStatus ConditionType = "enemy-has-status"
	ConditionSelfHasStatus  ConditionType = "self-has-status"
	ConditionAllyHasStatus  ConditionType = "ally-has-status"
)

// Condition is a single predicate evaluated against the combatant owning the
// rule. Optional fields left unset make the condition evaluate to false
// rather than fail (malformed configuration must not crash a tick).
type Condition struct {
	Type      ConditionType `json:"type"`
	Threshold *int          `json:"threshold,omitempty"`
	Status    StatusType    `json:"status,omitempty"`
}

// Rule is an AI trigger attached to a skill: when its conditions all hold
// and the (possibly overridden) targeting yields at least one target, the
// skill is used. Higher priority rules are evaluated first.
type Rule struct {
	Priority   int         `json:"priority"`
	Conditions []Condition `json:"conditions,omitempty"`
	Targeting  TargetMode  `json:"targeting,omitempty"`
}

// Skill is a static definition: effects, targeting, resolution time and the
// default AI rules used when no external instructions are supplied.
type Skill struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	BaseDuration int        `json:"base_duration"`
	Effects      []Effect   `json:"effects"`
	Targeting    TargetMode `json:"targeting"`
	Rules        []Rule     `json:"rules,omitempty"`
}

// hasEffect reports whether the skill carries an effect of the given kind.
func (s Skill) hasEffect(kind EffectKind) bool {
	for _, e := range s.Effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// UnknownSkillError reports a lookup for a skill id the library does not
// contain. This is a configuration bug: the engine fails the whole tick
// rather than silently corrupting the deterministic log.
type UnknownSkillError struct {
	ID string
}

func (e *UnknownSkillError) Error() string {
	return fmt.Sprintf("unknown skill id %q", e.ID)
}

// SkillLibrary is an immutable skill registry. It is passed by value to the
// engine so independent simulations never share mutable state.
type SkillLibrary struct {
	byID  map[string]Skill
	order []string
}

// NewSkillLibrary builds a registry from the given definitions. Later
// definitions with a duplicate id replace earlier ones.
func NewSkillLibrary(skills ...Skill) SkillLibrary {
	lib := SkillLibrary{byID: make(map[string]Skill, len(skills))}
	for _, s := range skills {
		if _, exists := lib.byID[s.ID]; !exists {
			lib.order = append(lib.order, s.ID)
		}
		lib.byID[s.ID] = s
	}
	return lib
}

// Get returns the skill for id, or an UnknownSkillError on a miss.
func (l SkillLibrary) Get(id string) (Skill, error) {
	s, ok := l.byID[id]
	if !ok {
		return Skill{}, &UnknownSkillError{ID: id}
	}
	return s, nil
}

// Has reports whether the library contains id.
func (l SkillLibrary) Has(id string) bool {
	_, ok := l.byID[id]
	return ok
}

// All returns every skill in registration order.
func (l SkillLibrary) All() []Skill {
	out := make([]Skill, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}
