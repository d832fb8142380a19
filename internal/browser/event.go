package browser

// Action is a browser input, already decoded from the key that produced it
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionPageUp
	ActionPageDown
	ActionActivate
	ActionBack
	ActionOpenGraphs
	ActionSampleDocuments
	ActionJumpToVertex
	ActionRefresh

	// Modal input
	ActionInsertChar
	ActionBackspace
	ActionConfirm
	ActionCancel
)

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionUp:              "up",
	ActionDown:            "down",
	ActionPageUp:          "page_up",
	ActionPageDown:        "page_down",
	ActionActivate:        "activate",
	ActionBack:            "back",
	ActionOpenGraphs:      "open_graphs",
	ActionSampleDocuments: "sample_documents",
	ActionJumpToVertex:    "jump_to_vertex",
	ActionRefresh:         "refresh",
	ActionInsertChar:      "insert_char",
	ActionBackspace:       "backspace",
	ActionConfirm:         "confirm",
	ActionCancel:          "cancel",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Event is one input delivered to the controller
type Event struct {
	Action Action
	Rune   rune // for ActionInsertChar
}

// Key builds an event without a rune
func Key(a Action) Event {
	return Event{Action: a}
}

// Char builds an ActionInsertChar event
func Char(r rune) Event {
	return Event{Action: ActionInsertChar, Rune: r}
}
