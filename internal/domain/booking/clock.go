package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTime je čas v rámci dne v minutách od půlnoci.
// Nahrazuje ruční skládání "HH:MM" řetězců napříč kódem.
type ClockTime int

const minutesPerDay = 24 * 60

func NewClock(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClock parsuje "HH:MM".
func ParseClock(s string) (ClockTime, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	return NewClock(hour, minute), nil
}

func (t ClockTime) Add(minutes int) ClockTime {
	return t + ClockTime(minutes)
}

func (t ClockTime) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// TimeInterval je polouzavřený interval [Start, End) v rámci jednoho dne.
type TimeInterval struct {
	Start ClockTime
	End   ClockTime
}

func NewInterval(start ClockTime, durationMin int) TimeInterval {
	return TimeInterval{Start: start, End: start.Add(durationMin)}
}

// ParseInterval parsuje dvojici "HH:MM".
func ParseInterval(start, end string) (TimeInterval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeInterval{}, err
	}

	e, err := ParseClock(end)
	if err != nil {
		return TimeInterval{}, err
	}

	return TimeInterval{Start: s, End: e}, nil
}

// Intersects testuje průnik polouzavřených intervalů. Intervaly, které
// na sebe jen navazují (konec == začátek), se nepřekrývají.
func (i TimeInterval) Intersects(other TimeInterval) bool {
	return i.Start < other.End && i.End > other.Start
}
