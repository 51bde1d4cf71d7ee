package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rook-computer/acrosstheroom/internal/state"
)

// scenarios seed the store so a look can be checked without clicking through
// the settings screen. F5 reapplies the startup scenario.
var scenarios = map[string]func(store *state.Store){
	"default": func(store *state.Store) {},
	"emergency": func(store *state.Store) {
		store.SetMessage("EVACUATE VIA STAIRS")
		store.ApplyPreset(state.PresetEmergency)
	},
	"party": func(store *state.Store) {
		store.SetMessage("happy birthday!")
		store.ApplyPreset(state.PresetParty)
		store.SetFont(state.FontHandwriting)
	},
	"heartbeat": func(store *state.Store) {
		store.SetMessage("I love you")
		store.ApplyPreset(state.PresetHeartbeat)
	},
	"slow": func(store *state.Store) {
		store.SetMessage("can you hear me from over there")
		store.SetScrollSpeed(3)
	},
	"empty": func(store *state.Store) {
		store.SetMessage("")
	},
}

func scenarioNames() string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, " | ")
}

type SimControl struct {
	store    *state.Store
	scenario string
}

func NewSimControl(store *state.Store, scenario string) *SimControl {
	scenario = strings.TrimSpace(scenario)
	if scenario == "" {
		scenario = "default"
	}
	return &SimControl{store: store, scenario: scenario}
}

func (c *SimControl) ApplyScenario() error {
	apply, ok := scenarios[c.scenario]
	if !ok {
		return fmt.Errorf("unknown scenario %q", c.scenario)
	}
	c.Reset()
	apply(c.store)
	return nil
}

// Reset returns every user setting to its default, keeping the viewport.
func (c *SimControl) Reset() {
	c.store.Reset()
}
