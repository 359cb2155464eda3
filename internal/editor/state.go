package editor

type State int

const (
	Viewing State = iota
	Editing
	Saving
	Saved
	Error
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	case Saved:
		return "saved"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// editable reports whether the working copy exists in this state.
func (s State) editable() bool {
	return s == Editing || s == Saving || s == Error
}
