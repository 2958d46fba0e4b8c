package combat

import (
	"errors"
	"reflect"
	"testing"
)

func TestSelectAction_RecordsRuleOutcomes(t *testing.T) {
	e := testEngine()
	caster := testCombatant("ayla", 100, false, "strike", "defend", "revive")
	allies := pool(caster)
	enemies := pool(testCombatant("grimm", 60, true))

	trace := &TickTrace{}
	sel, ok, err := e.selectAction(allies[0], allies, enemies, nil, trace)
	if err != nil || !ok {
		t.Fatalf("expected a selection, got ok=%v err=%v", ok, err)
	}
	if sel.skill.ID != "strike" {
		t.Fatalf("expected strike to win the walk, got %s", sel.skill.ID)
	}

	// Walk order is descending priority: revive (80) has no fallen ally so
	// its target set is empty, defend (70) fails its HP condition, strike
	// (10) is selected.
	if len(trace.Selections) != 1 {
		t.Fatalf("expected one selection trace, got %d", len(trace.Selections))
	}
	rules := trace.Selections[0].Rules
	want := []struct {
		skill   string
		outcome RuleOutcome
	}{
		{"revive", OutcomeSkipped},
		{"defend", OutcomeFailed},
		{"strike", OutcomeSelected},
	}
	if len(rules) != len(want) {
		t.Fatalf("expected %d rule traces, got %+v", len(want), rules)
	}
	for i, w := range want {
		if rules[i].SkillID != w.skill || rules[i].Outcome != w.outcome {
			t.Fatalf("rule %d: got %s/%s, want %s/%s",
				i, rules[i].SkillID, rules[i].Outcome, w.skill, w.outcome)
		}
	}
}

func TestSelectAction_LowerPriorityIsNotReached(t *testing.T) {
	e := testEngine()
	allies := pool(
		testCombatant("ayla", 100, false, "strike", "heal"),
		testCombatant("brom", 120, false),
	)
	enemies := pool(testCombatant("grimm", 60, true))

	trace := &TickTrace{}
	sel, ok, err := e.selectAction(allies[0], allies, enemies, nil, trace)
	if err != nil || !ok {
		t.Fatalf("expected a selection, got ok=%v err=%v", ok, err)
	}
	// heal's ally-count rule (40) beats strike (10) whenever a living ally
	// exists, even at full health.
	if sel.skill.ID != "heal" || !reflect.DeepEqual(sel.targets, []string{"brom"}) {
		t.Fatalf("expected heal on brom, got %s on %v", sel.skill.ID, sel.targets)
	}
	rules := trace.Selections[0].Rules
	last := rules[len(rules)-1]
	if last.SkillID != "strike" || last.Outcome != OutcomeNotReached {
		t.Fatalf("expected strike to be not-reached, got %s/%s", last.SkillID, last.Outcome)
	}
}

func TestSelectAction_PriorityTieKeepsSkillOrder(t *testing.T) {
	lib := NewSkillLibrary(
		Skill{
			ID: "jab", Name: "Jab", BaseDuration: 2, Targeting: TargetEnemyLowestHP,
			Effects: []Effect{{Kind: EffectDamage, Value: 5}},
			Rules:   []Rule{{Priority: 10}},
		},
		Skill{
			ID: "hook", Name: "Hook", BaseDuration: 2, Targeting: TargetEnemyLowestHP,
			Effects: []Effect{{Kind: EffectDamage, Value: 7}},
			Rules:   []Rule{{Priority: 10}},
		},
	)
	e := NewEngine(lib)
	allies := pool(testCombatant("ayla", 100, false, "hook", "jab"))
	enemies := pool(testCombatant("grimm", 60, true))

	sel, ok, err := e.selectAction(allies[0], allies, enemies, nil, nil)
	if err != nil || !ok {
		t.Fatalf("expected a selection, got ok=%v err=%v", ok, err)
	}
	if sel.skill.ID != "hook" {
		t.Fatalf("equal priority must keep equipped-skill order, got %s", sel.skill.ID)
	}
}

func TestSelectAction_NoRulesLeavesCombatantIdle(t *testing.T) {
	e := testEngine()
	allies := pool(testCombatant("ayla", 100, false))
	enemies := pool(testCombatant("grimm", 60, true))

	_, ok, err := e.selectAction(allies[0], allies, enemies, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("a combatant with no skills selected an action")
	}
}

func TestSelectAction_InstructionsReplaceEmbeddedRules(t *testing.T) {
	e := testEngine()
	allies := pool(testCombatant("ayla", 100, false, "strike"))
	strong := testCombatant("snarl", 90, true)
	enemies := pool(testCombatant("grimm", 60, true), strong)

	instr := Instructions{
		"ayla": {Mode: ModeAI, Instructions: []Instruction{
			{SkillID: "strike", Priority: 5, Targeting: TargetEnemyHighestHP, Enabled: true},
		}},
	}
	sel, ok, err := e.selectAction(allies[0], allies, enemies, instr, nil)
	if err != nil || !ok {
		t.Fatalf("expected a selection, got ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(sel.targets, []string{"snarl"}) {
		t.Fatalf("instruction targeting override ignored: %v", sel.targets)
	}
}

func TestSelectAction_DisabledInstructionIsNotEvaluated(t *testing.T) {
	e := testEngine()
	allies := pool(testCombatant("ayla", 100, false, "strike"))
	enemies := pool(testCombatant("grimm", 60, true))

	instr := Instructions{
		"ayla": {Mode: ModeAI, Instructions: []Instruction{
			{SkillID: "strike", Priority: 5, Enabled: false},
		}},
	}
	trace := &TickTrace{}
	_, ok, err := e.selectAction(allies[0], allies, enemies, instr, trace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("a disabled instruction produced a selection")
	}
}

func TestSelectAction_ManualModeStaysIdle(t *testing.T) {
	e := testEngine()
	allies := pool(testCombatant("ayla", 100, false, "strike"))
	enemies := pool(testCombatant("grimm", 60, true))

	instr := Instructions{"ayla": {Mode: ModeManual}}
	_, ok, err := e.selectAction(allies[0], allies, enemies, instr, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("manual mode must leave the combatant idle")
	}
}

func TestSelectAction_UnknownInstructionSkill(t *testing.T) {
	e := testEngine()
	allies := pool(testCombatant("ayla", 100, false, "strike"))
	enemies := pool(testCombatant("grimm", 60, true))

	instr := Instructions{
		"ayla": {Mode: ModeAI, Instructions: []Instruction{
			{SkillID: "meteor-swarm", Priority: 5, Enabled: true},
		}},
	}
	_, _, err := e.selectAction(allies[0], allies, enemies, instr, nil)
	var unknown *UnknownSkillError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSkillError, got %v", err)
	}
}
