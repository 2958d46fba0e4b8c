package combat

import "sort"

// damageInstance is one computed hit. base is the post-defending,
// pre-shield amount (the value damage events report); final is what reaches
// hit points after shield absorption.
type damageInstance struct {
	casterID    string
	targetID    string
	skillID     string
	casterEnemy bool
	base        int
	absorbed    int
	final       int
}

type healInstance struct {
	targetID string
	amount   int
	revive   bool
}

type statusApplication struct {
	targetID string
	effect   StatusEffect
}

type cancellation struct {
	targetID       string
	cancelledSkill string
}

// actionOutcome accumulates one action's work across substeps so events can
// be emitted at the end from final computed values.
type actionOutcome struct {
	action     Action
	skill      Skill
	damage     []*damageInstance
	heals      []healInstance
	targetLost []string
	statuses   []statusApplication
	cancels    []cancellation
}

// resolveActions executes the batch of actions completing this tick. The
// batch must already be sorted players-then-enemies, caster id ascending.
// Combatants are mutated in place; the caller owns the copies. Substeps run
// in fixed order over the whole batch: damage, healing, shield absorption,
// health update, status application, cancellation. All damage and healing
// is computed from the pre-tick snapshot, so simultaneous actions never see
// each other's results.
func resolveActions(lib SkillLibrary, actions []Action, byID map[string]*Combatant, roster []*Combatant, trace *TickTrace) ([]Event, error) {
	outcomes := make([]*actionOutcome, 0, len(actions))
	for _, a := range actions {
		skill, err := lib.Get(a.SkillID)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, &actionOutcome{action: a, skill: skill})
	}

	// Snapshot HP before any mutation: substeps 1-3 read these values and
	// knockout detection compares against them.
	prevHP := make(map[string]int, len(roster))
	for _, c := range roster {
		prevHP[c.ID] = c.CurrentHP
	}

	// Substep 1: damage calculation. Enraged adds its bonus (read, not
	// consumed); a defending target halves the result, floored.
	var allDamage []*damageInstance
	for _, out := range outcomes {
		caster := byID[out.action.CasterID]
		if caster == nil {
			continue
		}
		for _, eff := range out.skill.Effects {
			if eff.Kind != EffectDamage {
				continue
			}
			for _, tid := range out.action.TargetIDs {
				target := byID[tid]
				if target == nil || prevHP[tid] <= 0 {
					// Target vanished or was already down: skip the hit.
					continue
				}
				dmg := eff.Value + caster.StatusValue(StatusEnraged)
				if target.HasStatus(StatusDefending) {
					dmg = dmg / 2
				}
				inst := &damageInstance{
					casterID:    caster.ID,
					targetID:    tid,
					skillID:     out.skill.ID,
					casterEnemy: caster.Enemy,
					base:        dmg,
					final:       dmg,
				}
				out.damage = append(out.damage, inst)
				allDamage = append(allDamage, inst)
			}
		}
	}

	// Substep 2: healing calculation. Knocked-out targets only receive
	// healing through a revive effect; a revive aimed at a living target
	// loses it instead.
	for _, out := range outcomes {
		var reviveValue int
		hasRevive := false
		healSum := 0
		for _, eff := range out.skill.Effects {
			switch eff.Kind {
			case EffectHeal:
				healSum += eff.Value
			case EffectRevive:
				hasRevive = true
				reviveValue = eff.Value
			}
		}
		if healSum == 0 && !hasRevive {
			continue
		}
		for _, tid := range out.action.TargetIDs {
			target := byID[tid]
			if target == nil {
				continue
			}
			if prevHP[tid] <= 0 {
				if hasRevive {
					out.heals = append(out.heals, healInstance{targetID: tid, amount: reviveValue, revive: true})
				}
				continue
			}
			if hasRevive {
				out.targetLost = append(out.targetLost, tid)
			}
			if healSum > 0 {
				out.heals = append(out.heals, healInstance{targetID: tid, amount: healSum})
			}
		}
	}

	// Substep 3: shield absorption. Instances are re-sorted by the batch
	// rule because several actions may land on one target; the shield pool
	// depletes in that order.
	sorted := append([]*damageInstance(nil), allDamage...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].casterEnemy != sorted[j].casterEnemy {
			return !sorted[i].casterEnemy
		}
		return sorted[i].casterID < sorted[j].casterID
	})
	for _, inst := range sorted {
		target := byID[inst.targetID]
		if target == nil || !target.HasStatus(StatusShielded) {
			continue
		}
		for i := range target.Statuses {
			st := &target.Statuses[i]
			if st.Type != StatusShielded || !st.Active() {
				continue
			}
			if st.Value >= inst.base {
				st.Value -= inst.base
				inst.absorbed = inst.base
				inst.final = 0
			} else {
				inst.absorbed = st.Value
				inst.final = inst.base - st.Value
				st.Value = 0
			}
			break
		}
	}

	// Substep 4: health update. Damage and healing apply together, clamped
	// once, so simultaneous lethal damage and healing are order-independent.
	totalDamage := make(map[string]int)
	totalHealing := make(map[string]int)
	for _, inst := range allDamage {
		totalDamage[inst.targetID] += inst.final
	}
	for _, out := range outcomes {
		for _, h := range out.heals {
			totalHealing[h.targetID] += h.amount
		}
	}
	for _, c := range roster {
		dmg, heal := totalDamage[c.ID], totalHealing[c.ID]
		if dmg == 0 && heal == 0 {
			continue
		}
		c.CurrentHP = clampHP(c.CurrentHP-dmg+heal, c.MaxHP)
	}

	// Substep 5: status application. Poison's per-tick damage is fixed at
	// creation regardless of the declared effect value.
	for _, out := range outcomes {
		for _, eff := range out.skill.Effects {
			var applied StatusEffect
			switch eff.Kind {
			case EffectStatus:
				applied = StatusEffect{Type: eff.Status, Duration: eff.Duration, Value: eff.Value}
				if eff.Status == StatusPoisoned {
					applied.Value = PoisonDamagePerTick
				}
			case EffectShield:
				applied = StatusEffect{Type: StatusShielded, Duration: eff.Duration, Value: eff.Value}
			default:
				continue
			}
			for _, tid := range out.action.TargetIDs {
				target := byID[tid]
				if target == nil {
					continue
				}
				// Corpses from previous ticks take no statuses; combatants
				// knocked out during this resolution still do, and the
				// knockout emission clears them right after.
				if prevHP[tid] <= 0 && !target.Alive() {
					continue
				}
				ApplyStatus(target, applied)
				out.statuses = append(out.statuses, statusApplication{targetID: tid, effect: applied})
			}
		}
	}

	// Substep 6: action cancellation. Cancel effects and stun statuses
	// clear the in-flight action of each target; the loss is reported, not
	// silently dropped.
	for _, out := range outcomes {
		cancels := out.skill.hasEffect(EffectCancel)
		if !cancels {
			for _, eff := range out.skill.Effects {
				if eff.Kind == EffectStatus && eff.Status == StatusStunned {
					cancels = true
					break
				}
			}
		}
		if !cancels {
			continue
		}
		for _, tid := range out.action.TargetIDs {
			target := byID[tid]
			if target == nil || target.Action == nil {
				continue
			}
			out.cancels = append(out.cancels, cancellation{targetID: tid, cancelledSkill: target.Action.SkillID})
			target.Action = nil
		}
	}

	return emitResolutionEvents(outcomes, byID, roster, prevHP, trace), nil
}

// emitResolutionEvents builds the event list after all substeps, reading
// final computed values. Damage events deliberately report the pre-shield
// base amount: the log narrates intent, the HP delta shows mitigation.
func emitResolutionEvents(outcomes []*actionOutcome, byID map[string]*Combatant, roster []*Combatant, prevHP map[string]int, trace *TickTrace) []Event {
	var events []Event
	name := func(id string) string {
		if c := byID[id]; c != nil {
			return c.Name
		}
		return id
	}

	for _, out := range outcomes {
		caster := name(out.action.CasterID)
		events = append(events, Event{
			Type:    EventActionResolved,
			Actor:   out.action.CasterID,
			SkillID: out.skill.ID,
			Message: caster + " uses " + out.skill.Name,
		})
		rt := ResolutionTrace{CasterID: out.action.CasterID, SkillID: out.skill.ID}

		for _, inst := range out.damage {
			events = append(events, Event{
				Type:    EventDamage,
				Actor:   inst.casterID,
				Target:  inst.targetID,
				Value:   inst.base,
				SkillID: inst.skillID,
				Message: caster + " hits " + name(inst.targetID) + " for " + itoa(inst.base) + " damage",
			})
			rt.Damage = append(rt.Damage, DamageTrace{TargetID: inst.targetID, Base: inst.base, Absorbed: inst.absorbed, Final: inst.final})
		}
		for _, h := range out.heals {
			verb := " heals "
			if h.revive {
				verb = " revives "
			}
			events = append(events, Event{
				Type:    EventHealing,
				Actor:   out.action.CasterID,
				Target:  h.targetID,
				Value:   h.amount,
				SkillID: out.skill.ID,
				Message: caster + verb + name(h.targetID) + " for " + itoa(h.amount) + " HP",
			})
			rt.Heals = append(rt.Heals, HealTrace{TargetID: h.targetID, Amount: h.amount, Revive: h.revive})
		}
		for _, tid := range out.targetLost {
			events = append(events, Event{
				Type:    EventTargetLost,
				Actor:   out.action.CasterID,
				Target:  tid,
				SkillID: out.skill.ID,
				Message: caster + " has no valid target: " + name(tid) + " is still standing",
			})
		}
		for _, sa := range out.statuses {
			events = append(events, Event{
				Type:    EventStatusApplied,
				Actor:   out.action.CasterID,
				Target:  sa.targetID,
				SkillID: out.skill.ID,
				Status:  sa.effect.Type,
				Message: name(sa.targetID) + " is " + string(sa.effect.Type),
			})
			rt.Statuses = append(rt.Statuses, StatusTrace{TargetID: sa.targetID, Status: sa.effect.Type, Duration: sa.effect.Duration, Value: sa.effect.Value})
		}
		for _, cn := range out.cancels {
			events = append(events, Event{
				Type:    EventActionCancelled,
				Actor:   out.action.CasterID,
				Target:  cn.targetID,
				SkillID: cn.cancelledSkill,
				Message: name(cn.targetID) + "'s " + cn.cancelledSkill + " is interrupted",
			})
			rt.Cancelled = append(rt.Cancelled, cn.targetID)
		}
		trace.addResolution(rt)
	}

	// Knockouts: one event per combatant crossing to 0 this resolution, in
	// roster order. Reaching 0 also strips every status.
	for _, c := range roster {
		if prevHP[c.ID] > 0 && c.CurrentHP == 0 {
			c.Statuses = nil
			events = append(events, Event{
				Type:    EventKnockout,
				Target:  c.ID,
				Message: c.Name + " is knocked out",
			})
		}
	}
	return events
}
