package core

import "unicode"

// Action represents a semantic player action, abstracted from physical key presses.
// This allows screens to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone   Action = iota
	ActionGuess         // a-z - guess a letter
	ActionPick          // 1, 2, 3 - choose the difficulty of the next round
	ActionReset         // Ctrl+N - draw a new word
	ActionSave          // Ctrl+S - save to the current file
	ActionSaveAs        // Ctrl+A - save to another file
	ActionLoad          // Ctrl+O - open a save
	ActionAdmin         // Ctrl+W - edit the word bank
	ActionBack          // Escape - back to menu
	ActionQuit          // Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionGuess:
		return "Guess"
	case ActionPick:
		return "Pick"
	case ActionReset:
		return "Reset"
	case ActionSave:
		return "Save"
	case ActionSaveAs:
		return "SaveAs"
	case ActionLoad:
		return "Load"
	case ActionAdmin:
		return "Admin"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one decoded key press.
type Input struct {
	Action Action
	Letter rune // uppercase letter for ActionGuess
	Choice int  // 0-based option for ActionPick
}

// GuessInput builds a guess input, canonicalizing the letter to uppercase.
// Non-letters yield an empty input.
func GuessInput(r rune) Input {
	if !unicode.IsLetter(r) {
		return Input{}
	}
	return Input{Action: ActionGuess, Letter: unicode.ToUpper(r)}
}

// Is reports whether the input carries the given action.
func (in Input) Is(a Action) bool {
	return in.Action == a
}
