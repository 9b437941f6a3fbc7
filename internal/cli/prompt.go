package cli

import (
	"github.com/charmbracelet/huh"
)

// ConfirmFunc prompts the user for confirmation and returns true if confirmed.
type ConfirmFunc func(prompt string) (bool, error)

// NewConfirmFunc creates a ConfirmFunc using huh's interactive confirm component.
func NewConfirmFunc() ConfirmFunc {
	return func(prompt string) (bool, error) {
		result := true
		err := huh.NewConfirm().
			Title(prompt).
			Affirmative("Continue").
			Negative("Abort").
			Value(&result).
			Run()
		return result, err
	}
}

// AlwaysYes returns a ConfirmFunc that always confirms.
func AlwaysYes() ConfirmFunc {
	return func(_ string) (bool, error) {
		return true, nil
	}
}

// AlwaysNo returns a ConfirmFunc that always declines.
func AlwaysNo() ConfirmFunc {
	return func(_ string) (bool, error) {
		return false, nil
	}
}
