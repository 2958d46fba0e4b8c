package combat

// threshold is a convenience for rule condition literals.
func threshold(v int) *int { return &v }

// DefaultLibrary returns the built-in set of twelve skills. The numbers here
// are the canonical balance data; parties and encounters reference these
// skills by id. Every skill carries default rules so a battle runs
// unattended when the caller supplies no instructions.
func DefaultLibrary() SkillLibrary {
	return NewSkillLibrary(
		Skill{
			ID:           "strike",
			Name:         "Strike",
			BaseDuration: 2,
			Targeting:    TargetEnemyLowestHP,
			Effects:      []Effect{{Kind: EffectDamage, Value: 15}},
			Rules:        []Rule{{Priority: 10}},
		},
		Skill{
			ID:           "cleave",
			Name:         "Cleave",
			BaseDuration: 3,
			Targeting:    TargetAllEnemies,
			Effects:      []Effect{{Kind: EffectDamage, Value: 8}},
			Rules:        []Rule{{Priority: 15}},
		},
		Skill{
			ID:           "poison-dart",
			Name:         "Poison Dart",
			BaseDuration: 2,
			Targeting:    TargetEnemyLowestHP,
			Effects: []Effect{
				{Kind: EffectDamage, Value: 5},
				{Kind: EffectStatus, Status: StatusPoisoned, Duration: 3, Value: PoisonDamagePerTick},
			},
			Rules: []Rule{{Priority: 25}},
		},
		Skill{
			ID:           "stunning-blow",
			Name:         "Stunning Blow",
			BaseDuration: 3,
			Targeting:    TargetEnemyHighestHP,
			Effects: []Effect{
				{Kind: EffectDamage, Value: 10},
				{Kind: EffectStatus, Status: StatusStunned, Duration: 2},
			},
			Rules: []Rule{{Priority: 30}},
		},
		Skill{
			ID:           "disrupt",
			Name:         "Disrupt",
			BaseDuration: 2,
			Targeting:    TargetEnemyHighestHP,
			Effects:      []Effect{{Kind: EffectCancel}},
			Rules: []Rule{{
				Priority:   35,
				Conditions: []Condition{{Type: ConditionEnemyHasStatus, Status: StatusEnraged}},
			}},
		},
		Skill{
			ID:           "heal",
			Name:         "Heal",
			BaseDuration: 2,
			Targeting:    TargetAllyLowestHP,
			Effects:      []Effect{{Kind: EffectHeal, Value: 20}},
			Rules: []Rule{
				{
					Priority:   60,
					Conditions: []Condition{{Type: ConditionHPBelow, Threshold: threshold(50)}},
					Targeting:  TargetSelf,
				},
				{
					Priority:   40,
					Conditions: []Condition{{Type: ConditionAllyCount, Threshold: threshold(0)}},
				},
			},
		},
		Skill{
			ID:           "mass-heal",
			Name:         "Mass Heal",
			BaseDuration: 3,
			Targeting:    TargetAllAllies,
			Effects:      []Effect{{Kind: EffectHeal, Value: 10}},
			Rules: []Rule{{
				Priority:   45,
				Conditions: []Condition{{Type: ConditionAllyCount, Threshold: threshold(1)}},
			}},
		},
		Skill{
			ID:           "revive",
			Name:         "Revive",
			BaseDuration: 4,
			Targeting:    TargetAllyDead,
			Effects:      []Effect{{Kind: EffectRevive, Value: 10}},
			// No conditions: the rule always passes and is skipped whenever
			// no ally is down.
			Rules: []Rule{{Priority: 80}},
		},
		Skill{
			ID:           "barrier",
			Name:         "Barrier",
			BaseDuration: 2,
			Targeting:    TargetAllyLowestHP,
			Effects:      []Effect{{Kind: EffectShield, Value: 20, Duration: 3}},
			Rules: []Rule{
				{
					Priority:   50,
					Conditions: []Condition{{Type: ConditionEnemyHasStatus, Status: StatusEnraged}},
				},
				{
					Priority:   20,
					Conditions: []Condition{{Type: ConditionAllyCount, Threshold: threshold(0)}},
				},
			},
		},
		Skill{
			// The single instant skill: queued this tick, resolves next.
			ID:           "defend",
			Name:         "Defend",
			BaseDuration: 1,
			Targeting:    TargetSelf,
			Effects:      []Effect{{Kind: EffectStatus, Status: StatusDefending, Duration: 2}},
			Rules: []Rule{{
				Priority:   70,
				Conditions: []Condition{{Type: ConditionHPBelow, Threshold: threshold(30)}},
			}},
		},
		Skill{
			ID:           "taunt",
			Name:         "Taunt",
			BaseDuration: 2,
			Targeting:    TargetSelf,
			Effects:      []Effect{{Kind: EffectStatus, Status: StatusTaunting, Duration: 2}},
			Rules: []Rule{{
				Priority:   55,
				Conditions: []Condition{{Type: ConditionAllyCount, Threshold: threshold(1)}},
			}},
		},
		Skill{
			ID:           "enrage",
			Name:         "Enrage",
			BaseDuration: 2,
			Targeting:    TargetSelf,
			Effects:      []Effect{{Kind: EffectStatus, Status: StatusEnraged, Duration: PermanentDuration, Value: 10}},
			Rules: []Rule{{
				Priority:   65,
				Conditions: []Condition{{Type: ConditionHPBelow, Threshold: threshold(40)}},
			}},
		},
	)
}
