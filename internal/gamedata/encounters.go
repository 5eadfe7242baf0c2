package gamedata

// DefaultEncounter is the roster used when an encounter type is unknown.
const DefaultEncounter = "TestBattle"

// EncounterDef is a fixed roster of hostile slots for one encounter type.
// An empty slot entry leaves that slot inert until something spawns into it.
type EncounterDef struct {
	ID    string   `yaml:"id"`
	Slots []string `yaml:"slots"` // Hostile IDs in slot order, "" for an inert slot
}

// encountersFile represents the structure of encounters.yaml.
type encountersFile struct {
	Encounters []EncounterDef `yaml:"encounters"`
}

// LoadEncounters loads encounter rosters from the embedded encounters.yaml file.
func LoadEncounters() ([]EncounterDef, error) {
	file, err := Load[encountersFile]("encounters.yaml")
	if err != nil {
		return nil, err
	}
	return file.Encounters, nil
}
