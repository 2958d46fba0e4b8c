package combat

// selectTargets returns the ordered candidate list for a targeting mode.
// The allies/enemies pools are pre-oriented for the caster's side and keep
// roster order, which is what breaks all HP ties (leftmost wins). Dead
// combatants are never returned except by TargetAllyDead.
func selectTargets(mode TargetMode, caster *Combatant, allies, enemies []*Combatant) []*Combatant {
	switch mode {
	case TargetSelf:
		return []*Combatant{caster}

	case TargetEnemyLowestHP:
		return pickExtreme(living(enemies), func(best, c *Combatant) bool {
			return c.CurrentHP < best.CurrentHP
		})

	case TargetEnemyHighestHP:
		return pickExtreme(living(enemies), func(best, c *Combatant) bool {
			return c.CurrentHP > best.CurrentHP
		})

	case TargetAllEnemies:
		return living(enemies)

	case TargetAllyLowestHP:
		return pickExtreme(living(exclude(allies, caster)), func(best, c *Combatant) bool {
			return c.CurrentHP < best.CurrentHP
		})

	case TargetAllyDead:
		for _, c := range allies {
			if !c.Alive() {
				return []*Combatant{c}
			}
		}
		return nil

	case TargetAllAllies:
		return living(exclude(allies, caster))
	}
	return nil
}

// applyFilters narrows a candidate list after selection. Order is fixed:
// dead exclusion, taunt forcing, then self-exclusion for ally modes. An
// empty result means the skill is unusable this evaluation, not an error.
func applyFilters(mode TargetMode, candidates []*Combatant, caster *Combatant, enemies []*Combatant) []*Combatant {
	out := candidates
	if mode != TargetAllyDead {
		out = living(out)
	}
	if mode.enemyDirected() {
		// A living taunter on the opposing team collapses the candidate
		// set to exactly that taunter. With several simultaneous taunters
		// the leftmost in roster order wins.
		for _, e := range enemies {
			if e.Alive() && e.HasStatus(StatusTaunting) {
				return []*Combatant{e}
			}
		}
	}
	if mode.allyDirected() {
		out = exclude(out, caster)
	}
	return out
}

func living(pool []*Combatant) []*Combatant {
	out := make([]*Combatant, 0, len(pool))
	for _, c := range pool {
		if c.Alive() {
			out = append(out, c)
		}
	}
	return out
}

func exclude(pool []*Combatant, skip *Combatant) []*Combatant {
	out := make([]*Combatant, 0, len(pool))
	for _, c := range pool {
		if c.ID != skip.ID {
			out = append(out, c)
		}
	}
	return out
}

// pickExtreme returns a singleton holding the first pool member for which
// no earlier member is preferred by better. Strict comparison keeps ties on
// the leftmost candidate.
func pickExtreme(pool []*Combatant, better func(best, c *Combatant) bool) []*Combatant {
	if len(pool) == 0 {
		return nil
	}
	best := pool[0]
	for _, c := range pool[1:] {
		if better(best, c) {
			best = c
		}
	}
	return []*Combatant{best}
}
