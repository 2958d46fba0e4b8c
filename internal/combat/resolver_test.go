package combat

import "testing"

func indexByID(roster []*Combatant) map[string]*Combatant {
	byID := make(map[string]*Combatant, len(roster))
	for _, c := range roster {
		byID[c.ID] = c
	}
	return byID
}

func resolvedAction(skillID, casterID string, targetIDs ...string) Action {
	return Action{SkillID: skillID, CasterID: casterID, TargetIDs: targetIDs}
}

func TestResolveActions_EnragedBonusAndDefendingHalve(t *testing.T) {
	caster := testCombatant("ayla", 100, false, "strike")
	caster.Statuses = []StatusEffect{{Type: StatusEnraged, Duration: PermanentDuration, Value: 10}}
	target := testCombatant("grimm", 60, true)
	target.Statuses = []StatusEffect{{Type: StatusDefending, Duration: 2}}
	roster := pool(caster, target)

	evs, err := resolveActions(DefaultLibrary(), []Action{resolvedAction("strike", "ayla", "grimm")}, indexByID(roster), roster, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (15 + 10) / 2, floored.
	if roster[1].CurrentHP != 48 {
		t.Fatalf("expected 12 damage, grimm HP=%d", roster[1].CurrentHP)
	}
	if !hasEvent(evs, EventDamage) {
		t.Fatalf("missing damage event: %+v", evs)
	}
	// Enraged is read, not consumed.
	if !roster[0].HasStatus(StatusEnraged) {
		t.Fatalf("enraged was consumed by the attack")
	}
}

func TestResolveActions_ShieldAbsorbsAndEventReportsBase(t *testing.T) {
	caster := testCombatant("ayla", 100, false, "strike")
	target := testCombatant("grimm", 60, true)
	target.Statuses = []StatusEffect{{Type: StatusShielded, Duration: 3, Value: 20}}
	roster := pool(caster, target)

	evs, err := resolveActions(DefaultLibrary(), []Action{resolvedAction("strike", "ayla", "grimm")}, indexByID(roster), roster, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roster[1].CurrentHP != 60 {
		t.Fatalf("shield leaked: grimm HP=%d", roster[1].CurrentHP)
	}
	if got := roster[1].StatusValue(StatusShielded); got != 5 {
		t.Fatalf("expected 5 shield left, got %d", got)
	}
	// The log narrates intent: the damage event carries the pre-shield
	// amount, the HP delta shows the mitigation.
	for _, ev := range evs {
		if ev.Type == EventDamage && ev.Value != 15 {
			t.Fatalf("damage event must report the base amount, got %d", ev.Value)
		}
	}
}

func TestResolveActions_ShieldOverflow(t *testing.T) {
	caster := testCombatant("ayla", 100, false, "strike")
	target := testCombatant("grimm", 60, true)
	target.Statuses = []StatusEffect{{Type: StatusShielded, Duration: 3, Value: 10}}
	roster := pool(caster, target)

	if _, err := resolveActions(DefaultLibrary(), []Action{resolvedAction("strike", "ayla", "grimm")}, indexByID(roster), roster, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roster[1].CurrentHP != 55 {
		t.Fatalf("expected 5 overflow damage, grimm HP=%d", roster[1].CurrentHP)
	}
	if got := roster[1].StatusValue(StatusShielded); got != 0 {
		t.Fatalf("expected an empty shield pool, got %d", got)
	}
}

func TestResolveActions_SimultaneousDamageAndHealClampOnce(t *testing.T) {
	healer := testCombatant("ayla", 100, false, "heal")
	target := testCombatant("mira", 60, false)
	target.CurrentHP = 10
	attacker := testCombatant("grimm", 60, true, "strike")
	roster := pool(healer, target, attacker)

	// Players resolve before enemies, but the order must not matter: both
	// amounts combine before the single clamp.
	actions := []Action{
		resolvedAction("heal", "ayla", "mira"),
		resolvedAction("strike", "grimm", "mira"),
	}
	evs, err := resolveActions(DefaultLibrary(), actions, indexByID(roster), roster, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roster[1].CurrentHP != 15 {
		t.Fatalf("expected 10 - 15 + 20 = 15, got %d", roster[1].CurrentHP)
	}
	if hasEvent(evs, EventKnockout) {
		t.Fatalf("simultaneous healing must prevent the knockout: %+v", evs)
	}
}

func TestResolveActions_ReviveRestoresFallenAlly(t *testing.T) {
	caster := testCombatant("mira", 60, false, "revive")
	fallen := testCombatant("brom", 120, false)
	fallen.CurrentHP = 0
	roster := pool(caster, fallen)

	evs, err := resolveActions(DefaultLibrary(), []Action{resolvedAction("revive", "mira", "brom")}, indexByID(roster), roster, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roster[1].CurrentHP != 10 {
		t.Fatalf("expected brom back at 10 HP, got %d", roster[1].CurrentHP)
	}
	if !hasEvent(evs, EventHealing) {
		t.Fatalf("missing healing event: %+v", evs)
	}
}

func TestResolveActions_ReviveLosesLivingTarget(t *testing.T) {
	caster := testCombatant("mira", 60, false, "revive")
	standing := testCombatant("brom", 120, false)
	roster := pool(caster, standing)

	evs, err := resolveActions(DefaultLibrary(), []Action{resolvedAction("revive", "mira", "brom")}, indexByID(roster), roster, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasEvent(evs, EventTargetLost) {
		t.Fatalf("expected a target-lost event, got %+v", evs)
	}
	if roster[1].CurrentHP != 120 {
		t.Fatalf("revive healed a living target: %d", roster[1].CurrentHP)
	}
}

func TestResolveActions_DisruptCancelsInFlightAction(t *testing.T) {
	caster := testCombatant("snarl", 90, true, "disrupt")
	target := testCombatant("brom", 120, false, "cleave")
	target.Action = &Action{SkillID: "cleave", CasterID: "brom", TicksRemaining: 2}
	roster := pool(target, caster)

	evs, err := resolveActions(DefaultLibrary(), []Action{resolvedAction("disrupt", "snarl", "brom")}, indexByID(roster), roster, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roster[0].Action != nil {
		t.Fatalf("disrupt left the action in flight")
	}
	if !hasEvent(evs, EventActionCancelled) {
		t.Fatalf("missing cancellation event: %+v", evs)
	}
}

func TestResolveActions_StunningBlowCancelsToo(t *testing.T) {
	caster := testCombatant("snarl", 90, true, "stunning-blow")
	target := testCombatant("brom", 120, false, "cleave")
	target.Action = &Action{SkillID: "cleave", CasterID: "brom", TicksRemaining: 1}
	roster := pool(target, caster)

	evs, err := resolveActions(DefaultLibrary(), []Action{resolvedAction("stunning-blow", "snarl", "brom")}, indexByID(roster), roster, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roster[0].Action != nil || !roster[0].HasStatus(StatusStunned) {
		t.Fatalf("stun must both land and interrupt: action=%v statuses=%+v", roster[0].Action, roster[0].Statuses)
	}
	if !hasEvent(evs, EventActionCancelled) {
		t.Fatalf("missing cancellation event: %+v", evs)
	}
}

func TestResolveActions_KnockoutStripsStatuses(t *testing.T) {
	caster := testCombatant("ayla", 100, false, "strike")
	target := testCombatant("grimm", 60, true)
	target.CurrentHP = 10
	target.Statuses = []StatusEffect{{Type: StatusPoisoned, Duration: 3, Value: PoisonDamagePerTick}}
	roster := pool(caster, target)

	evs, err := resolveActions(DefaultLibrary(), []Action{resolvedAction("strike", "ayla", "grimm")}, indexByID(roster), roster, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roster[1].CurrentHP != 0 || len(roster[1].Statuses) != 0 {
		t.Fatalf("knockout left state behind: hp=%d statuses=%+v", roster[1].CurrentHP, roster[1].Statuses)
	}
	if !hasEvent(evs, EventKnockout) {
		t.Fatalf("missing knockout event: %+v", evs)
	}
}

func TestResolveActions_AlreadyDownTargetIsSkippedSilently(t *testing.T) {
	caster := testCombatant("ayla", 100, false, "strike")
	corpse := testCombatant("grimm", 60, true)
	corpse.CurrentHP = 0
	roster := pool(caster, corpse)

	evs, err := resolveActions(DefaultLibrary(), []Action{resolvedAction("strike", "ayla", "grimm")}, indexByID(roster), roster, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasEvent(evs, EventDamage) || hasEvent(evs, EventKnockout) {
		t.Fatalf("a corpse took a hit: %+v", evs)
	}
	if !hasEvent(evs, EventActionResolved) {
		t.Fatalf("the action itself still resolves: %+v", evs)
	}
}

func TestResolveActions_PoisonValueIsFixedAtCreation(t *testing.T) {
	lib := NewSkillLibrary(Skill{
		ID: "venom", Name: "Venom", BaseDuration: 2, Targeting: TargetEnemyLowestHP,
		Effects: []Effect{{Kind: EffectStatus, Status: StatusPoisoned, Duration: 3, Value: 99}},
		Rules:   []Rule{{Priority: 10}},
	})
	caster := testCombatant("mira", 60, false, "venom")
	target := testCombatant("grimm", 60, true)
	roster := pool(caster, target)

	if _, err := resolveActions(lib, []Action{resolvedAction("venom", "mira", "grimm")}, indexByID(roster), roster, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := roster[1].StatusValue(StatusPoisoned); got != PoisonDamagePerTick {
		t.Fatalf("poison per-tick damage must be fixed at %d, got %d", PoisonDamagePerTick, got)
	}
}
