package combat

import (
	"reflect"
	"testing"
)

// pool builds a pointer slice preserving the given roster order.
func pool(cs ...Combatant) []*Combatant {
	out := make([]*Combatant, len(cs))
	for i := range cs {
		out[i] = &cs[i]
	}
	return out
}

func ids(pool []*Combatant) []string { return combatantIDs(pool) }

func TestSelectTargets_LowestHPLeftmostTie(t *testing.T) {
	enemies := pool(
		testCombatant("a", 100, true),
		testCombatant("b", 100, true),
		testCombatant("c", 100, true),
	)
	enemies[1].CurrentHP = 30
	enemies[2].CurrentHP = 30

	caster := testCombatant("ayla", 100, false)
	got := ids(selectTargets(TargetEnemyLowestHP, &caster, nil, enemies))
	if !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("expected leftmost of the tied pair, got %v", got)
	}
}

func TestSelectTargets_SkipsDead(t *testing.T) {
	dead := testCombatant("a", 100, true)
	dead.CurrentHP = 0
	enemies := pool(dead, testCombatant("b", 100, true), testCombatant("c", 80, true))
	caster := testCombatant("ayla", 100, false)

	if got := ids(selectTargets(TargetEnemyLowestHP, &caster, nil, enemies)); !reflect.DeepEqual(got, []string{"c"}) {
		t.Fatalf("lowest-hp included a corpse: %v", got)
	}
	if got := ids(selectTargets(TargetEnemyHighestHP, &caster, nil, enemies)); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("highest-hp wrong: %v", got)
	}
	if got := ids(selectTargets(TargetAllEnemies, &caster, nil, enemies)); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("all-enemies included a corpse: %v", got)
	}
}

func TestSelectTargets_AllyModesExcludeCaster(t *testing.T) {
	allies := pool(
		testCombatant("ayla", 100, false),
		testCombatant("brom", 120, false),
		testCombatant("mira", 60, false),
	)
	caster := allies[2] // mira is the lowest, but never her own ally target

	if got := ids(selectTargets(TargetAllyLowestHP, caster, allies, nil)); !reflect.DeepEqual(got, []string{"ayla"}) {
		t.Fatalf("ally-lowest wrong: %v", got)
	}
	if got := ids(selectTargets(TargetAllAllies, caster, allies, nil)); !reflect.DeepEqual(got, []string{"ayla", "brom"}) {
		t.Fatalf("all-allies wrong: %v", got)
	}
}

func TestSelectTargets_AllyDead(t *testing.T) {
	down := testCombatant("brom", 120, false)
	down.CurrentHP = 0
	alsoDown := testCombatant("mira", 60, false)
	alsoDown.CurrentHP = 0
	allies := pool(testCombatant("ayla", 100, false), down, alsoDown)
	caster := allies[0]

	if got := ids(selectTargets(TargetAllyDead, caster, allies, nil)); !reflect.DeepEqual(got, []string{"brom"}) {
		t.Fatalf("expected the first fallen ally, got %v", got)
	}

	healthy := pool(testCombatant("ayla", 100, false), testCombatant("brom", 120, false))
	if got := selectTargets(TargetAllyDead, healthy[0], healthy, nil); got != nil {
		t.Fatalf("expected no target with everyone standing, got %v", ids(got))
	}
}

func TestApplyFilters_TauntForcesEnemyDirectedModes(t *testing.T) {
	weak := testCombatant("snarl", 100, true)
	weak.CurrentHP = 10
	taunterA := testCombatant("grimm", 100, true)
	taunterA.Statuses = []StatusEffect{{Type: StatusTaunting, Duration: 2}}
	taunterB := testCombatant("wisp", 100, true)
	taunterB.Statuses = []StatusEffect{{Type: StatusTaunting, Duration: 2}}
	enemies := pool(taunterA, weak, taunterB)
	caster := testCombatant("ayla", 100, false)

	candidates := selectTargets(TargetEnemyLowestHP, &caster, nil, enemies)
	got := ids(applyFilters(TargetEnemyLowestHP, candidates, &caster, enemies))
	// Two simultaneous taunters: the leftmost in roster order wins.
	if !reflect.DeepEqual(got, []string{"grimm"}) {
		t.Fatalf("taunt did not redirect to the leftmost taunter: %v", got)
	}

	candidates = selectTargets(TargetAllEnemies, &caster, nil, enemies)
	got = ids(applyFilters(TargetAllEnemies, candidates, &caster, enemies))
	if !reflect.DeepEqual(got, []string{"grimm"}) {
		t.Fatalf("taunt must collapse area targeting too, got %v", got)
	}
}

func TestApplyFilters_DeadTaunterIsIgnored(t *testing.T) {
	deadTaunter := testCombatant("grimm", 100, true)
	deadTaunter.CurrentHP = 0
	deadTaunter.Statuses = []StatusEffect{{Type: StatusTaunting, Duration: 2}}
	enemies := pool(deadTaunter, testCombatant("snarl", 100, true))
	caster := testCombatant("ayla", 100, false)

	candidates := selectTargets(TargetEnemyLowestHP, &caster, nil, enemies)
	got := ids(applyFilters(TargetEnemyLowestHP, candidates, &caster, enemies))
	if !reflect.DeepEqual(got, []string{"snarl"}) {
		t.Fatalf("a fallen taunter still redirected: %v", got)
	}
}

func TestApplyFilters_TauntDoesNotTouchAllyModes(t *testing.T) {
	taunter := testCombatant("grimm", 100, true)
	taunter.Statuses = []StatusEffect{{Type: StatusTaunting, Duration: 2}}
	enemies := pool(taunter)
	allies := pool(testCombatant("ayla", 100, false), testCombatant("brom", 120, false))
	caster := allies[1]

	candidates := selectTargets(TargetAllyLowestHP, caster, allies, enemies)
	got := ids(applyFilters(TargetAllyLowestHP, candidates, caster, enemies))
	if !reflect.DeepEqual(got, []string{"ayla"}) {
		t.Fatalf("taunt leaked into ally targeting: %v", got)
	}
}

func TestExecuteTick_TauntRedirectsEnemyAttack(t *testing.T) {
	e := testEngine()
	weak := testCombatant("mira", 60, false)
	weak.CurrentHP = 20
	tank := testCombatant("brom", 120, false)
	tank.Statuses = []StatusEffect{{Type: StatusTaunting, Duration: 5}}
	st := NewCombatState(
		[]Combatant{weak, tank},
		[]Combatant{testCombatant("grimm", 100, true, "strike")},
	)

	st = advance(t, e, st, nil, 3)
	if st.Players[0].CurrentHP != 20 {
		t.Fatalf("strike ignored the taunt and hit mira: HP=%d", st.Players[0].CurrentHP)
	}
	if st.Players[1].CurrentHP != 105 {
		t.Fatalf("expected the taunter to absorb the strike, HP=%d", st.Players[1].CurrentHP)
	}
}
