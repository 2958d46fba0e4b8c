package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etrusk/tubaba/internal/combat"
	"github.com/etrusk/tubaba/internal/config"
)

// simulate plays a battle offline and prints the event log. Because the
// engine has no randomness, re-running the same party against the same
// encounter always prints the same log.
func main() {
	dataDir := flag.String("data", "./data", "directory holding parties.yaml and encounters.yaml")
	partyID := flag.String("party", "", "party id from parties.yaml")
	encounterID := flag.String("encounter", "", "encounter id from encounters.yaml")
	flag.Parse()

	if *partyID == "" || *encounterID == "" {
		fmt.Fprintln(os.Stderr, "usage: simulate -party <id> -encounter <id> [-data <dir>]")
		os.Exit(2)
	}

	lib := combat.DefaultLibrary()
	parties, err := config.LoadParties(filepath.Join(*dataDir, "parties.yaml"), lib)
	if err != nil {
		fail(err)
	}
	encounters, err := config.LoadEncounters(filepath.Join(*dataDir, "encounters.yaml"), lib)
	if err != nil {
		fail(err)
	}

	var party *config.PartyDef
	for i := range parties {
		if parties[i].ID == *partyID {
			party = &parties[i]
		}
	}
	if party == nil {
		fail(fmt.Errorf("unknown party %q", *partyID))
	}
	var enc *config.EncounterDef
	for i := range encounters {
		if encounters[i].ID == *encounterID {
			enc = &encounters[i]
		}
	}
	if enc == nil {
		fail(fmt.Errorf("unknown encounter %q", *encounterID))
	}

	engine := combat.NewEngine(lib)
	st := combat.NewCombatState(config.Roster(party.Members, false), config.Roster(enc.Enemies, true))
	final, err := engine.RunBattle(st, nil)
	if err != nil {
		fail(err)
	}

	for _, ev := range final.Events {
		fmt.Printf("[%3d] %-16s %s\n", ev.Tick, ev.Type, ev.Message)
	}
	fmt.Printf("\n%s after %d ticks\n", final.Status, final.Tick)
	for _, c := range append(final.Players, final.Enemies...) {
		fmt.Printf("  %-12s %3d/%3d HP\n", c.Name, c.CurrentHP, c.MaxHP)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "simulate:", err)
	os.Exit(1)
}
