package textinput

// Source is the action source name of the text input popup.
const Source = "textinput"

// Result contains the text input result.
type Result struct {
	Text     string
	Context  any  // passed through from Start
	Canceled bool // true if the user pressed Escape
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "textinput.result" }
