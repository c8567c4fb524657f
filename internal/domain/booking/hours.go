package booking

import "time"

// DayHours je otevírací okno jednoho dne v celých hodinách.
// {0, 0} znamená zavřeno.
type DayHours struct {
	Open  int `json:"open"`
	Close int `json:"close"`
}

func (d DayHours) Closed() bool {
	return d.Open == 0 && d.Close == 0
}

// Window vrací otevírací dobu jako interval.
func (d DayHours) Window() TimeInterval {
	return TimeInterval{
		Start: NewClock(d.Open, 0),
		End:   NewClock(d.Close, 0),
	}
}

// BusinessHours mapuje den v týdnu na otevírací dobu salonu.
type BusinessHours map[time.Weekday]DayHours

// DefaultBusinessHours vrací vždy novou mapu, aby sdílená konfigurace
// nešla omylem zmutovat mezi requesty.
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		time.Sunday:    {Open: 0, Close: 0},
		time.Monday:    {Open: 9, Close: 19},
		time.Tuesday:   {Open: 9, Close: 19},
		time.Wednesday: {Open: 9, Close: 19},
		time.Thursday:  {Open: 9, Close: 19},
		time.Friday:    {Open: 9, Close: 19},
		time.Saturday:  {Open: 9, Close: 14},
	}
}

// HoursFor vrací otevírací dobu pro den v týdnu; druhá hodnota je false,
// pokud je ten den zavřeno.
func (b BusinessHours) HoursFor(day time.Weekday) (DayHours, bool) {
	hours, ok := b[day]
	if !ok || hours.Closed() {
		return DayHours{}, false
	}
	return hours, true
}
