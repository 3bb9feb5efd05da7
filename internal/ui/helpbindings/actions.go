package helpbindings

// Close signals the help popup should close.
type Close struct{}

// ActionType implements action.Action.
func (a Close) ActionType() string { return "helpbindings.close" }

// Source is the action source name of the help popup.
const Source = "helpbindings"
