package enums

import "fmt"

// Shift names a recurring daily window during which an employee may act.
type Shift string

const (
	ShiftMadrugada Shift = "madrugada"
	ShiftManha     Shift = "manha"
	ShiftTarde     Shift = "tarde"
	ShiftNoite     Shift = "noite"
)

// ShiftWindow is a half-open UTC hour interval [Start, End).
type ShiftWindow struct {
	Start int
	End   int
}

// Contains reports whether the UTC hour falls inside the window.
func (w ShiftWindow) Contains(hour int) bool {
	return hour >= w.Start && hour < w.End
}

// ShiftWindows maps each shift name to its UTC hour range. The four windows
// are contiguous and partition the 24-hour day exactly.
var ShiftWindows = map[Shift]ShiftWindow{
	ShiftMadrugada: {Start: 0, End: 6},
	ShiftManha:     {Start: 6, End: 12},
	ShiftTarde:     {Start: 12, End: 18},
	ShiftNoite:     {Start: 18, End: 24},
}

var validShifts = []Shift{
	ShiftMadrugada,
	ShiftManha,
	ShiftTarde,
	ShiftNoite,
}

// String implements fmt.Stringer.
func (s Shift) String() string {
	return string(s)
}

// IsValid reports whether the value names a known shift.
func (s Shift) IsValid() bool {
	_, ok := ShiftWindows[s]
	return ok
}

// ParseShift converts raw input into a Shift.
func ParseShift(value string) (Shift, error) {
	for _, candidate := range validShifts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shift %q", value)
}
