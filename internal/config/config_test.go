package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etrusk/tubaba/internal/combat"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeFile(t, "config.json", `{}`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8080" || cfg.DBPath != "./data/tubaba.db" || cfg.DataDir != "./data" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.TickCeiling != combat.TickCeiling {
		t.Fatalf("expected engine ceiling %d, got %d", combat.TickCeiling, cfg.TickCeiling)
	}
}

func TestLoadConfig_ReadsValues(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"server": {"address": ":9090"},
		"database": {"path": "/tmp/b.db"},
		"data_dir": "/srv/data",
		"tick_ceiling": 100
	}`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9090" || cfg.DBPath != "/tmp/b.db" || cfg.DataDir != "/srv/data" || cfg.TickCeiling != 100 {
		t.Fatalf("values not read: %+v", cfg)
	}
}

func TestLoadConfig_ParsesBattleTTL(t *testing.T) {
	path := writeFile(t, "config.json", `{"battle_ttl": "90m"}`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BattleTTL != 90*time.Minute {
		t.Fatalf("expected 90m, got %v", cfg.BattleTTL)
	}

	path = writeFile(t, "config.json", `{"battle_ttl": "soon"}`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected an error for a malformed battle_ttl")
	}
}

func TestLoadConfig_RejectsCeilingAboveEngineLimit(t *testing.T) {
	path := writeFile(t, "config.json", `{"tick_ceiling": 100000}`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected an error for an out-of-range tick ceiling")
	}
}

func TestLoadParties_ValidatesSkills(t *testing.T) {
	lib := combat.DefaultLibrary()
	path := writeFile(t, "parties.yaml", `
parties:
  - id: heroes
    name: Heroes
    members:
      - id: a
        name: A
        max_hp: 50
        skills: [strike, not-a-skill]
`)
	if _, err := LoadParties(path, lib); err == nil {
		t.Fatalf("expected an error for an unknown skill")
	}
}

func TestLoadParties_RejectsDuplicateIDs(t *testing.T) {
	lib := combat.DefaultLibrary()
	path := writeFile(t, "parties.yaml", `
parties:
  - id: heroes
    name: Heroes
    members:
      - {id: a, name: A, max_hp: 50, skills: [strike]}
      - {id: a, name: B, max_hp: 50, skills: [strike]}
`)
	if _, err := LoadParties(path, lib); err == nil {
		t.Fatalf("expected an error for duplicate combatant ids")
	}
}

func TestLoadEncounters_PreservesStageOrder(t *testing.T) {
	lib := combat.DefaultLibrary()
	path := writeFile(t, "encounters.yaml", `
encounters:
  - id: first
    name: First
    unlock_skill: cleave
    enemies:
      - {id: e1, name: E1, max_hp: 20, skills: [strike]}
  - id: second
    name: Second
    enemies:
      - {id: e2, name: E2, max_hp: 20, skills: [strike]}
`)
	encs, err := LoadEncounters(path, lib)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(encs) != 2 || encs[0].ID != "first" || encs[1].ID != "second" {
		t.Fatalf("stage order not preserved: %+v", encs)
	}
	if encs[0].UnlockSkill != "cleave" {
		t.Fatalf("unlock skill not read: %+v", encs[0])
	}
}

func TestLoadEncounters_RejectsUnknownUnlockSkill(t *testing.T) {
	lib := combat.DefaultLibrary()
	path := writeFile(t, "encounters.yaml", `
encounters:
  - id: first
    name: First
    unlock_skill: not-a-skill
    enemies:
      - {id: e1, name: E1, max_hp: 20, skills: [strike]}
`)
	if _, err := LoadEncounters(path, lib); err == nil {
		t.Fatalf("expected an error for an unknown unlock skill")
	}
}

func TestRoster_BuildsFullHealthCombatants(t *testing.T) {
	defs := []CombatantDef{
		{ID: "a", Name: "A", MaxHP: 50, Skills: []string{"strike"}},
		{ID: "b", Name: "B", MaxHP: 30, Skills: []string{"heal"}},
	}
	out := Roster(defs, true)
	if len(out) != 2 {
		t.Fatalf("expected 2 combatants, got %d", len(out))
	}
	for i, c := range out {
		if c.CurrentHP != defs[i].MaxHP || !c.Enemy {
			t.Fatalf("combatant %q misbuilt: %+v", c.ID, c)
		}
	}
	// The roster must not alias the definition's skill slice.
	out[0].Skills[0] = "changed"
	if defs[0].Skills[0] != "strike" {
		t.Fatalf("roster aliases definition skills")
	}
}
