package world

import (
	"go.uber.org/zap"

	"github.com/samdwyer/timelock/internal/gamedata"
	"github.com/samdwyer/timelock/internal/ledger"
)

// InteractionKind says what bumping into an object did.
type InteractionKind int

const (
	// InteractNone - nothing happens
	InteractNone InteractionKind = iota
	// InteractEncounter - the object is a hostile; start its encounter
	InteractEncounter
	// InteractOpened - a door opened
	InteractOpened
	// InteractLocked - a locked door and no key
	InteractLocked
	// InteractSealed - a door only a puzzle can open
	InteractSealed
	// InteractCollected - an item went into the inventory
	InteractCollected
	// InteractEmpty - an already looted barrel
	InteractEmpty
	// InteractRead - a sign was read
	InteractRead
	// InteractPuzzle - the object is a puzzle; open it
	InteractPuzzle
	// InteractStairs - load the target scene
	InteractStairs
)

// String returns the interaction name.
func (k InteractionKind) String() string {
	switch k {
	case InteractNone:
		return "none"
	case InteractEncounter:
		return "encounter"
	case InteractOpened:
		return "opened"
	case InteractLocked:
		return "locked"
	case InteractSealed:
		return "sealed"
	case InteractCollected:
		return "collected"
	case InteractEmpty:
		return "empty"
	case InteractRead:
		return "read"
	case InteractPuzzle:
		return "puzzle"
	case InteractStairs:
		return "stairs"
	default:
		return "unknown"
	}
}

// Interaction is the result of touching an object.
type Interaction struct {
	Kind    InteractionKind
	Object  *Object
	Item    string // InteractCollected
	Message string
}

// Interactor applies object interactions to the ledger and an inventory.
type Interactor struct {
	ledger    *ledger.Ledger
	inventory *Inventory
	logger    *zap.Logger
}

// NewInteractor creates an interactor writing to led and inv.
func NewInteractor(led *ledger.Ledger, inv *Inventory, logger *zap.Logger) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{ledger: led, inventory: inv, logger: logger}
}

// Interact touches o. Every ledger write also updates o's flags so the
// scene reflects it without a full resync.
func (in *Interactor) Interact(o *Object) Interaction {
	if o == nil || o.Gone {
		return Interaction{Kind: InteractNone}
	}

	switch o.Kind() {
	case gamedata.ObjectHostile:
		if o.Disabled {
			return Interaction{Kind: InteractNone, Object: o}
		}
		return Interaction{Kind: InteractEncounter, Object: o}

	case gamedata.ObjectDoor:
		return in.door(o)

	case gamedata.ObjectKey:
		in.ledger.Register(ledger.ItemCollected, o.ID)
		in.inventory.Add(ItemKey)
		o.Gone = true
		in.logger.Debug("item collected", zap.String("object", string(o.ID)), zap.String("item", ItemKey))
		return Interaction{Kind: InteractCollected, Object: o, Item: ItemKey, Message: "You pick up a Key."}

	case gamedata.ObjectBarrel:
		if o.Emptied || o.Def.Contents == "" {
			return Interaction{Kind: InteractEmpty, Object: o, Message: "The barrel is empty."}
		}
		in.ledger.Register(ledger.ItemCollected, o.ID)
		in.inventory.Add(o.Def.Contents)
		o.Emptied = true
		in.logger.Debug("item collected", zap.String("object", string(o.ID)), zap.String("item", o.Def.Contents))
		return Interaction{Kind: InteractCollected, Object: o, Item: o.Def.Contents,
			Message: "You find a " + o.Def.Contents + " in the barrel."}

	case gamedata.ObjectSign:
		in.ledger.Register(ledger.MarkerRead, o.ID)
		o.Read = true
		return Interaction{Kind: InteractRead, Object: o, Message: o.Def.Message}

	case gamedata.ObjectClockPuzzle, gamedata.ObjectButtonPuzzle:
		return Interaction{Kind: InteractPuzzle, Object: o}

	case gamedata.ObjectStairs:
		return Interaction{Kind: InteractStairs, Object: o, Message: "You take the stairs to " + o.Def.Target + "."}

	default:
		return Interaction{Kind: InteractNone, Object: o}
	}
}

func (in *Interactor) door(o *Object) Interaction {
	switch {
	case o.Open:
		return Interaction{Kind: InteractNone, Object: o}
	case o.Def.Event:
		return Interaction{Kind: InteractSealed, Object: o, Message: "The door will not budge."}
	case o.Def.Locked && !in.inventory.Remove(ItemKey):
		return Interaction{Kind: InteractLocked, Object: o, Message: "The door is locked."}
	}

	in.ledger.Register(ledger.BarrierOpen, o.ID)
	o.Open = true
	in.logger.Debug("door opened", zap.String("object", string(o.ID)), zap.Bool("locked", o.Def.Locked))
	return Interaction{Kind: InteractOpened, Object: o, Message: "The door opens."}
}
