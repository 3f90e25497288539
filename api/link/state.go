package link

import "github.com/pkg/errors"

// State is an enabled/disabled switch of a link setting.
type State string

const (
	StateEnabled  State = "enabled"
	StateDisabled State = "disabled"
)

// ErrInvalidState is returned for a State other than StateEnabled or StateDisabled.
var ErrInvalidState = errors.New("invalid state")

// ParseState maps "enabled"/"disabled" (any case) to a State.
func ParseState(s string) (State, error) {
	switch State(lower(s)) {
	case StateEnabled:
		return StateEnabled, nil
	case StateDisabled:
		return StateDisabled, nil
	}
	return "", errors.Wrapf(ErrInvalidState, "%q", s)
}

func (s State) String() string {
	return string(s)
}
