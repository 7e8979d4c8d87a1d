package theme

import "fmt"

// Mode is the persisted color scheme of the client.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Light || m == Dark
}

// Toggle returns the opposite mode. Anything that is not Dark toggles to Dark.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether m is Dark.
func (m Mode) IsDark() bool {
	return m == Dark
}

// ParseMode converts s into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown theme mode %q", s)
	}
	return m, nil
}
