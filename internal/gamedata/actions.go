package gamedata

// =============================================================================
// PLAYER ACTIONS
// =============================================================================
//
// The battle menu has four main options: Attack, Defend, Stats and Run.
// Attack and Defend open submenus whose entries are the actions below, in
// file order. Stats and Run are fixed entries handled by the battle engine.
//
// EffectType decides the formula, the numbers come from here:
//
//   strike: one target, damage = attack - target.defense (unclamped)
//   sweep:  every living hostile, damage = ceil(attack/divisor) - its defense
//   guard:  temporary defense += power, SP += spRestore
//   mend:   health += power, clamped to max
//
// spCost is checked before anything is mutated. An action the player cannot
// pay for does nothing and does not consume the turn.

// EffectType represents what a player action does.
type EffectType string

const (
	EffectStrike EffectType = "strike"
	EffectSweep  EffectType = "sweep"
	EffectGuard  EffectType = "guard"
	EffectMend   EffectType = "mend"
)

// TargetType represents who an action affects.
type TargetType string

const (
	TargetSelf          TargetType = "self"
	TargetSingleHostile TargetType = "single_hostile"
	TargetAllHostiles   TargetType = "all_hostiles"
)

// Menu names the main option an action is listed under.
type Menu string

const (
	MenuAttack Menu = "attack"
	MenuDefend Menu = "defend"
)

// ActionDef defines a player action loaded from YAML.
type ActionDef struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Menu      Menu       `yaml:"menu"`
	Effect    EffectType `yaml:"effect"`
	Target    TargetType `yaml:"target"`
	SPCost    int        `yaml:"sp_cost"`
	Power     int        `yaml:"power"`
	SPRestore int        `yaml:"sp_restore"`
	Divisor   int        `yaml:"divisor"` // For sweep: attack is divided by this, rounded up
}

// NeedsTarget returns true if the action requires target selection.
func (a *ActionDef) NeedsTarget() bool {
	return a.Target == TargetSingleHostile
}

// IsOffensive returns true if the action targets hostiles.
func (a *ActionDef) IsOffensive() bool {
	return a.Target == TargetSingleHostile || a.Target == TargetAllHostiles
}

// actionsFile represents the structure of actions.yaml.
type actionsFile struct {
	Actions []ActionDef `yaml:"actions"`
}

// LoadActions loads player action definitions from the embedded actions.yaml file.
func LoadActions() ([]ActionDef, error) {
	file, err := Load[actionsFile]("actions.yaml")
	if err != nil {
		return nil, err
	}
	return file.Actions, nil
}
