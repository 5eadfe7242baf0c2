package gamedata

// ObjectKind names a kind of placed world object.
type ObjectKind string

const (
	ObjectHostile      ObjectKind = "hostile"
	ObjectDoor         ObjectKind = "door"
	ObjectKey          ObjectKind = "key"
	ObjectBarrel       ObjectKind = "barrel"
	ObjectSign         ObjectKind = "sign"
	ObjectClockPuzzle  ObjectKind = "clock_puzzle"
	ObjectButtonPuzzle ObjectKind = "button_puzzle"
	ObjectStairs       ObjectKind = "stairs"
)

// TimeDef is an (hour, minute) pair in scene data.
type TimeDef struct {
	Hour   int `yaml:"hour"`
	Minute int `yaml:"minute"`
}

// ObjectDef places one object in a scene. Room indexes wrap around the number
// of rooms the scene's seed generates.
type ObjectDef struct {
	Name      string     `yaml:"name"` // Optional local name, used for identifiers and links
	Kind      ObjectKind `yaml:"kind"`
	Room      int        `yaml:"room"`
	Encounter string     `yaml:"encounter"` // hostile: encounter type started on contact
	Contents  string     `yaml:"contents"`  // barrel: item inside
	Message   string     `yaml:"message"`   // sign: text shown when read
	Locked    bool       `yaml:"locked"`    // door: needs a Key
	Event     bool       `yaml:"event"`     // door: opened only by a puzzle
	Opens     string     `yaml:"opens"`     // puzzle: name of the door it opens
	Target    string     `yaml:"target"`    // stairs: scene to load
	Solution  []TimeDef  `yaml:"solution"`  // clock_puzzle: one time per dial
	Buttons   int        `yaml:"buttons"`   // button_puzzle: number of plates
}

// SceneDef describes one explorable scene.
type SceneDef struct {
	Name    string      `yaml:"name"`
	Seed    int64       `yaml:"seed"`
	Width   int         `yaml:"width"`
	Height  int         `yaml:"height"`
	Objects []ObjectDef `yaml:"objects"`
}

// scenesFile represents the structure of scenes.yaml.
type scenesFile struct {
	Scenes []SceneDef `yaml:"scenes"`
}

// LoadScenes loads scene definitions from the embedded scenes.yaml file.
func LoadScenes() ([]SceneDef, error) {
	file, err := Load[scenesFile]("scenes.yaml")
	if err != nil {
		return nil, err
	}
	return file.Scenes, nil
}
