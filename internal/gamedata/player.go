package gamedata

// PlayerDef holds the player's base stats, restored on every new game.
type PlayerDef struct {
	Name          string   `yaml:"name"`
	HP            int      `yaml:"hp"`             // Base and maximum health
	SP            int      `yaml:"sp"`             // Base and maximum special points
	Attack        int      `yaml:"attack"`         // Base attack power
	Defense       int      `yaml:"defense"`        // Base defense value
	StartingItems []string `yaml:"starting_items"` // Inventory at the start of a new game
}

// playerFile represents the structure of player.yaml.
type playerFile struct {
	Player PlayerDef `yaml:"player"`
}

// LoadPlayer loads the player definition from the embedded player.yaml file.
func LoadPlayer() (PlayerDef, error) {
	file, err := Load[playerFile]("player.yaml")
	if err != nil {
		return PlayerDef{}, err
	}
	return file.Player, nil
}
