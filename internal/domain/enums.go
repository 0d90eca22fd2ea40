package domain

import (
	"fmt"
	"strings"
)

// Phase is the position of a game session in its level progression.
type Phase int

const (
	Intro Phase = iota
	Playing
	Solved
	NameEntry
	Transition
)

var phaseNames = [...]string{"intro", "playing", "solved", "name_entry", "transition"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range phaseNames {
		if n == s {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", s)
}
