package types

// Text edit actions
type InsertCharAction struct {
	Char rune
}

func (a InsertCharAction) Type() string { return "insert_char" }

type DeleteCharAction struct{}

func (a DeleteCharAction) Type() string { return "delete_char" }

type DeleteWordAction struct{}

func (a DeleteWordAction) Type() string { return "delete_word" }

type ClearInputAction struct{}

func (a ClearInputAction) Type() string { return "clear_input" }

// Selection actions
type SelectNextAction struct{}

func (a SelectNextAction) Type() string { return "select_next" }

type SelectPrevAction struct{}

func (a SelectPrevAction) Type() string { return "select_prev" }

// Terminal actions
type SubmitAction struct{}

func (a SubmitAction) Type() string { return "submit" }

type ExitAction struct{}

func (a ExitAction) Type() string { return "exit" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }
