package domain

import (
	"errors"
	"regexp"
	"strconv"
)

var ErrInvalidInput = errors.New("invalid input")

// Validation rules for everything that crosses the trust boundary. Each
// predicate is pure and side-effect free; the HTTP layer runs them before
// any mutation and the services re-check defensively.
var (
	userNameRe  = regexp.MustCompile(`^[a-zA-Z0-9]{4,32}$`)
	passwordRe  = regexp.MustCompile(`^[a-zA-Z0-9_]{4,32}$`)
	pollIDRe    = regexp.MustCompile(`^[0-9]+$`)
	pollTitleRe = regexp.MustCompile(`^[A-Z][a-zA-Z0-9 ]{2,46}[a-zA-Z0-9]$`)
	pollDescRe  = regexp.MustCompile(`^[A-Z].{2,254}\S$`)
	pollNotesRe = regexp.MustCompile(`^.{0,64}$`)
)

// ValidUserName accepts alphanumeric names of 4–32 characters.
func ValidUserName(name string) bool {
	return userNameRe.MatchString(name)
}

// ValidPassword accepts alphanumeric-or-underscore passwords of 4–32 characters.
func ValidPassword(password string) bool {
	return passwordRe.MatchString(password)
}

// ValidPollID accepts strings of digits that parse to an integer greater
// than zero.
func ValidPollID(id string) bool {
	if !pollIDRe.MatchString(id) {
		return false
	}
	n, err := strconv.ParseInt(id, 10, 64)
	return err == nil && n > 0
}

// ValidVoteChoice accepts exactly the literals "Yes" and "No".
func ValidVoteChoice(choice string) bool {
	return choice == ChoiceYes || choice == ChoiceNo
}

// ValidPollTitle accepts 4–48 characters: an upper-case letter, then
// alphanumerics or spaces, ending on an alphanumeric (no trailing space).
func ValidPollTitle(title string) bool {
	return pollTitleRe.MatchString(title)
}

// ValidPollDescription accepts 4–256 characters starting with an upper-case
// letter, containing no newlines and not ending in whitespace.
func ValidPollDescription(description string) bool {
	return pollDescRe.MatchString(description)
}

// ValidPollNotes accepts up to 64 characters without newlines. The bound is
// inclusive and there is no lower bound: the empty string is a valid note.
func ValidPollNotes(notes string) bool {
	return pollNotesRe.MatchString(notes)
}
