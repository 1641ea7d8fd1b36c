package enums

import "fmt"

// GameStatus controls catalog visibility.
type GameStatus string

const (
	GameStatusActive GameStatus = "active"
	GameStatusHidden GameStatus = "hidden"
)

var validGameStatuses = []GameStatus{
	GameStatusActive,
	GameStatusHidden,
}

// String implements fmt.Stringer.
func (g GameStatus) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GameStatus.
func (g GameStatus) IsValid() bool {
	for _, candidate := range validGameStatuses {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGameStatus converts raw input into a GameStatus.
func ParseGameStatus(value string) (GameStatus, error) {
	for _, candidate := range validGameStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid game status %q", value)
}
