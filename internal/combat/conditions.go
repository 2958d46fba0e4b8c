package combat

// evaluateCondition decides a single rule predicate for the given combatant.
// The allies pool is pre-oriented and includes the evaluator itself; the
// evaluator and dead units are excluded here where the predicate demands it.
// Missing optional fields never panic: the condition just evaluates false,
// so a malformed rule silently never fires.
func evaluateCondition(cond Condition, self *Combatant, allies, enemies []*Combatant) bool {
	switch cond.Type {
	case ConditionHPBelow:
		if cond.Threshold == nil || self.MaxHP <= 0 {
			return false
		}
		pct := float64(self.CurrentHP) / float64(self.MaxHP) * 100
		return pct < float64(*cond.Threshold)

	case ConditionAllyCount:
		if cond.Threshold == nil {
			return false
		}
		count := 0
		for _, a := range allies {
			if a.ID != self.ID && a.Alive() {
				count++
			}
		}
		return count > *cond.Threshold

	case ConditionSelfHasStatus:
		if cond.Status == "" {
			return false
		}
		return self.HasStatus(cond.Status)

	case ConditionAllyHasStatus:
		if cond.Status == "" {
			return false
		}
		for _, a := range allies {
			if a.ID != self.ID && a.Alive() && a.HasStatus(cond.Status) {
				return true
			}
		}
		return false

	case ConditionEnemyHasStatus:
		if cond.Status == "" {
			return false
		}
		for _, e := range enemies {
			if e.Alive() && e.HasStatus(cond.Status) {
				return true
			}
		}
		return false
	}
	return false
}

// conditionsPass reports whether every condition of a rule holds (AND). A
// rule with no conditions always passes.
func conditionsPass(conds []Condition, self *Combatant, allies, enemies []*Combatant) bool {
	for _, cond := range conds {
		if !evaluateCondition(cond, self, allies, enemies) {
			return false
		}
	}
	return true
}
