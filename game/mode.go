package game

import "fmt"

// Mode selects which scene drives the panel.
type Mode uint8

const (
	ModeDigital Mode = iota
	ModeAnalog
)

// ParseMode converts a config or flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "digital":
		return ModeDigital, nil
	case "analog":
		return ModeAnalog, nil
	}
	return ModeDigital, fmt.Errorf("unknown mode %q", s)
}

func (m Mode) String() string {
	if m == ModeAnalog {
		return "analog"
	}
	return "digital"
}

// Next returns the other mode.
func (m Mode) Next() Mode {
	if m == ModeAnalog {
		return ModeDigital
	}
	return ModeAnalog
}
