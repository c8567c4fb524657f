package timezone

import "time"

const DefaultTimezone = "Europe/Prague"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Today vrací dnešní datum salonu jako YYYY-MM-DD.
func Today() string {
	return Now().Format("2006-01-02")
}
