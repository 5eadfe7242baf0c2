package gamedata

import (
	"errors"
	"fmt"
)

// ErrUnknownHostile is returned when an encounter roster names a hostile ID
// that has no definition.
var ErrUnknownHostile = errors.New("unknown hostile")

// HostileRegistry holds loaded hostile definitions.
type HostileRegistry struct {
	hostiles map[string]*HostileDef
	all      []HostileDef
}

// NewHostileRegistry creates a registry from loaded hostile definitions.
func NewHostileRegistry(hostiles []HostileDef) *HostileRegistry {
	registry := &HostileRegistry{
		hostiles: make(map[string]*HostileDef),
		all:      hostiles,
	}
	for i := range hostiles {
		registry.hostiles[hostiles[i].ID] = &hostiles[i]
	}
	return registry
}

// GetByID returns the hostile definition with the given ID, or nil if not found.
func (r *HostileRegistry) GetByID(id string) *HostileDef {
	return r.hostiles[id]
}

// All returns all hostile definitions.
func (r *HostileRegistry) All() []HostileDef {
	return r.all
}

// Count returns the number of hostile types in the registry.
func (r *HostileRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// EncounterRegistry
// =============================================================================

// EncounterRegistry maps encounter types to their rosters.
type EncounterRegistry struct {
	encounters map[string]*EncounterDef
	all        []EncounterDef
}

// NewEncounterRegistry creates a registry and checks every roster slot
// against the hostile registry.
func NewEncounterRegistry(encounters []EncounterDef, hostiles *HostileRegistry) (*EncounterRegistry, error) {
	registry := &EncounterRegistry{
		encounters: make(map[string]*EncounterDef),
		all:        encounters,
	}
	for i := range encounters {
		enc := &encounters[i]
		for slot, id := range enc.Slots {
			if id != "" && hostiles.GetByID(id) == nil {
				return nil, fmt.Errorf("encounter %s slot %d: %w %q", enc.ID, slot, ErrUnknownHostile, id)
			}
		}
		registry.encounters[enc.ID] = enc
	}
	if registry.encounters[DefaultEncounter] == nil {
		return nil, fmt.Errorf("default encounter %q not defined", DefaultEncounter)
	}
	return registry, nil
}

// Lookup returns the roster for an encounter type.
func (r *EncounterRegistry) Lookup(id string) (*EncounterDef, bool) {
	enc, ok := r.encounters[id]
	return enc, ok
}

// Default returns the fallback roster.
func (r *EncounterRegistry) Default() *EncounterDef {
	return r.encounters[DefaultEncounter]
}

// Count returns the number of encounter types in the registry.
func (r *EncounterRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// ActionRegistry
// =============================================================================

// ActionRegistry holds loaded player action definitions and provides lookup utilities.
type ActionRegistry struct {
	actions map[string]*ActionDef
	all     []ActionDef
}

// NewActionRegistry creates a registry from loaded action definitions.
func NewActionRegistry(actions []ActionDef) *ActionRegistry {
	registry := &ActionRegistry{
		actions: make(map[string]*ActionDef),
		all:     actions,
	}
	for i := range actions {
		registry.actions[actions[i].ID] = &actions[i]
	}
	return registry
}

// GetByID returns the action definition with the given ID, or nil if not found.
func (r *ActionRegistry) GetByID(id string) *ActionDef {
	return r.actions[id]
}

// ByMenu returns the actions listed under a main option, in file order.
func (r *ActionRegistry) ByMenu(menu Menu) []*ActionDef {
	var result []*ActionDef
	for i := range r.all {
		if r.all[i].Menu == menu {
			result = append(result, &r.all[i])
		}
	}
	return result
}

// Count returns the number of actions in the registry.
func (r *ActionRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// Registry
// =============================================================================

// Registry bundles every embedded data set.
type Registry struct {
	Player     PlayerDef
	Hostiles   *HostileRegistry
	Encounters *EncounterRegistry
	Actions    *ActionRegistry
	Scenes     []SceneDef
}

// LoadRegistry loads and cross-checks all embedded data.
func LoadRegistry() (*Registry, error) {
	player, err := LoadPlayer()
	if err != nil {
		return nil, err
	}
	hostileDefs, err := LoadHostiles()
	if err != nil {
		return nil, err
	}
	if len(hostileDefs) == 0 {
		return nil, errors.New("no hostiles loaded from hostiles.yaml")
	}
	hostiles := NewHostileRegistry(hostileDefs)

	encounterDefs, err := LoadEncounters()
	if err != nil {
		return nil, err
	}
	encounters, err := NewEncounterRegistry(encounterDefs, hostiles)
	if err != nil {
		return nil, err
	}

	actionDefs, err := LoadActions()
	if err != nil {
		return nil, err
	}
	if len(actionDefs) == 0 {
		return nil, errors.New("no actions loaded from actions.yaml")
	}

	scenes, err := LoadScenes()
	if err != nil {
		return nil, err
	}

	return &Registry{
		Player:     player,
		Hostiles:   hostiles,
		Encounters: encounters,
		Actions:    NewActionRegistry(actionDefs),
		Scenes:     scenes,
	}, nil
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Scene returns the scene definition with the given name.
func (r *Registry) Scene(name string) (*SceneDef, bool) {
	for i := range r.Scenes {
		if r.Scenes[i].Name == name {
			return &r.Scenes[i], true
		}
	}
	return nil, false
}
