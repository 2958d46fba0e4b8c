package config

import (
	"fmt"
	"os"

	"github.com/etrusk/tubaba/internal/combat"

	"gopkg.in/yaml.v3"
)

// CombatantDef is one roster entry in a party or encounter data file.
type CombatantDef struct {
	ID     string   `yaml:"id" json:"id"`
	Name   string   `yaml:"name" json:"name"`
	MaxHP  int      `yaml:"max_hp" json:"max_hp"`
	Skills []string `yaml:"skills" json:"skills"`
}

// PartyDef is a player roster definition.
type PartyDef struct {
	ID      string         `yaml:"id" json:"id"`
	Name    string         `yaml:"name" json:"name"`
	Members []CombatantDef `yaml:"members" json:"members"`
}

// EncounterDef is an enemy roster definition. Encounters keep file order:
// a run walks them as stages, granting UnlockSkill to the party after a
// victory.
type EncounterDef struct {
	ID          string         `yaml:"id" json:"id"`
	Name        string         `yaml:"name" json:"name"`
	Enemies     []CombatantDef `yaml:"enemies" json:"enemies"`
	UnlockSkill string         `yaml:"unlock_skill,omitempty" json:"unlock_skill,omitempty"`
}

type partiesFile struct {
	Parties []PartyDef `yaml:"parties"`
}

type encountersFile struct {
	Encounters []EncounterDef `yaml:"encounters"`
}

// LoadParties reads and validates the party data file. Every referenced
// skill must exist in the library; roster order is preserved because it is
// engine-visible (tie-breaking).
func LoadParties(path string, lib combat.SkillLibrary) ([]PartyDef, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read party file %s: %w", path, err)
	}
	var pf partiesFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse party file %s: %w", path, err)
	}
	if len(pf.Parties) == 0 {
		return nil, fmt.Errorf("party file %s: 'parties' is empty", path)
	}
	seen := make(map[string]struct{}, len(pf.Parties))
	for _, p := range pf.Parties {
		if p.ID == "" {
			return nil, fmt.Errorf("party file %s: party missing 'id'", path)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("party file %s: duplicate party id %q", path, p.ID)
		}
		seen[p.ID] = struct{}{}
		if err := validateRoster(p.Members, lib); err != nil {
			return nil, fmt.Errorf("party file %s: party %q: %w", path, p.ID, err)
		}
	}
	return pf.Parties, nil
}

// LoadEncounters reads and validates the encounter data file. File order is
// the run stage order.
func LoadEncounters(path string, lib combat.SkillLibrary) ([]EncounterDef, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encounter file %s: %w", path, err)
	}
	var ef encountersFile
	if err := yaml.Unmarshal(b, &ef); err != nil {
		return nil, fmt.Errorf("failed to parse encounter file %s: %w", path, err)
	}
	if len(ef.Encounters) == 0 {
		return nil, fmt.Errorf("encounter file %s: 'encounters' is empty", path)
	}
	seen := make(map[string]struct{}, len(ef.Encounters))
	for _, e := range ef.Encounters {
		if e.ID == "" {
			return nil, fmt.Errorf("encounter file %s: encounter missing 'id'", path)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("encounter file %s: duplicate encounter id %q", path, e.ID)
		}
		seen[e.ID] = struct{}{}
		if err := validateRoster(e.Enemies, lib); err != nil {
			return nil, fmt.Errorf("encounter file %s: encounter %q: %w", path, e.ID, err)
		}
		if e.UnlockSkill != "" && !lib.Has(e.UnlockSkill) {
			return nil, fmt.Errorf("encounter file %s: encounter %q: unknown unlock_skill %q", path, e.ID, e.UnlockSkill)
		}
	}
	return ef.Encounters, nil
}

func validateRoster(members []CombatantDef, lib combat.SkillLibrary) error {
	if len(members) == 0 {
		return fmt.Errorf("roster is empty")
	}
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if m.ID == "" {
			return fmt.Errorf("roster entry missing 'id'")
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("duplicate combatant id %q", m.ID)
		}
		seen[m.ID] = struct{}{}
		if m.MaxHP <= 0 {
			return fmt.Errorf("combatant %q: max_hp must be positive", m.ID)
		}
		for _, s := range m.Skills {
			if !lib.Has(s) {
				return fmt.Errorf("combatant %q: unknown skill %q", m.ID, s)
			}
		}
	}
	return nil
}

// Roster converts definitions into engine combatants, preserving order.
func Roster(defs []CombatantDef, enemy bool) []combat.Combatant {
	out := make([]combat.Combatant, 0, len(defs))
	for _, d := range defs {
		out = append(out, combat.Combatant{
			ID:        d.ID,
			Name:      d.Name,
			MaxHP:     d.MaxHP,
			CurrentHP: d.MaxHP,
			Skills:    append([]string(nil), d.Skills...),
			Enemy:     enemy,
		})
	}
	return out
}
